package main

import (
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"medstock/config"
	"medstock/internal/domain"
	"medstock/internal/pkg/logger"

	// Camadas para Injeção de Dependências
	"medstock/internal/repository/medicinerepo" // Estoque em memória
	"medstock/internal/service/editservice"     // Sessão de edição
	"medstock/internal/service/inventoryservice"
	"medstock/internal/service/viewservice" // Filtro, ordenação e total
	"medstock/internal/tui"                 // Apresentação
)

func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	// Se o arquivo não existir, seguimos com o ambiente do sistema.
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Configuração inválida: %v", err)
	}

	// A TUI ocupa o terminal, então os logs vão para arquivo.
	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Falha ao abrir o arquivo de log %q: %v", cfg.LogFile, err)
		}
		defer f.Close()
		out = f
	}
	appLog := logger.NewLoggerTo(out, cfg.LogLevel)
	appLog.Info("Configurações carregadas.", map[string]interface{}{
		"env":                 cfg.Environment,
		"low_stock_threshold": cfg.LowStockThreshold,
		"expiring_soon_days":  cfg.ExpiringSoonDays,
		"strict_quantity":     cfg.StrictQuantity,
	})

	// 2. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Services -> TUI
	repo := medicinerepo.NewRepository(appLog)
	appLog.Debug("Repositório de Medicamentos inicializado.", nil)

	views := viewservice.NewService(viewservice.Options{
		LowStockThreshold: cfg.LowStockThreshold,
		ExpiringSoonDays:  cfg.ExpiringSoonDays,
	}, appLog)
	session := editservice.NewSession(repo, editservice.Options{StrictQuantity: cfg.StrictQuantity}, appLog)
	inventorySvc := inventoryservice.NewService(repo, views, session, appLog)
	appLog.Debug("Serviços de estoque inicializados.", nil)

	// 3. Execução
	query := domain.ViewQuery{Filter: cfg.DefaultFilter, Sort: cfg.DefaultSort}
	if err := tui.Run(inventorySvc, query, appLog); err != nil {
		appLog.Error("Aplicação encerrada com erro.", err)
		os.Exit(1)
	}

	appLog.Info("Aplicação encerrada com sucesso.", nil)
}
