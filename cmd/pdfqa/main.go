package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"pdfqa/internal/chunker"
	"pdfqa/internal/config"
	"pdfqa/internal/domain"
	embedollama "pdfqa/internal/embedding/ollama"
	embedopenai "pdfqa/internal/embedding/openai"
	"pdfqa/internal/engine"
	llmollama "pdfqa/internal/llm/ollama"
	llmopenai "pdfqa/internal/llm/openai"
	"pdfqa/internal/tui"
	"pdfqa/internal/vectorstore/file"
	"pdfqa/internal/vectorstore/memory"
	"pdfqa/internal/vectorstore/qdrant"
)

var cfgPath string

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "pdfqa",
		Short: "Ask questions about PDF documents",
		Long:  "pdfqa ingests a PDF into a persistent vector index and answers questions about it with a retrieval-augmented language model.",
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (default: ./config.yaml, then ~/.config/pdfqa/config.yaml)")

	rootCmd.AddCommand(newIngestCommand())
	rootCmd.AddCommand(newAskCommand())
	rootCmd.AddCommand(newChatCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newIngestCommand() *cobra.Command {
	var rebuild bool

	cmd := &cobra.Command{
		Use:   "ingest <file.pdf>",
		Short: "Build (or load) the vector index for a PDF",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			mgr, _ := mustManager()
			doc := mustRead(args[0])
			if rebuild {
				if err := mgr.Invalidate(doc); err != nil {
					fatal(err)
				}
			}
			eng, err := mgr.BuildOrLoad(doc, filepath.Base(args[0]))
			if err != nil {
				fatal(err)
			}
			fmt.Printf("Index %s ready: %d chunks\n", mgr.Signature(doc), eng.Store().Count())
		},
	}
	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "Discard any existing index and re-ingest from the PDF")

	return cmd
}

func newAskCommand() *cobra.Command {
	var topK int

	cmd := &cobra.Command{
		Use:   "ask <file.pdf> <question>",
		Short: "Answer a single question about a PDF",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			mgr, _ := mustManager()
			doc := mustRead(args[0])
			eng, err := mgr.BuildOrLoad(doc, filepath.Base(args[0]))
			if err != nil {
				fatal(err)
			}
			question := strings.Join(args[1:], " ")
			answer, err := eng.Answer(question, topK)
			if err != nil {
				fatal(err)
			}
			if strings.TrimSpace(answer) == "" {
				fmt.Println("No relevant information found. Please try a different question.")
				return
			}
			fmt.Println(answer)
		},
	}
	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "Number of chunks to retrieve (default from config)")

	return cmd
}

func newChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <file.pdf>",
		Short: "Interactive question loop over a PDF",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			mgr, cfg := mustManager()
			doc := mustRead(args[0])
			eng, err := mgr.BuildOrLoad(doc, filepath.Base(args[0]))
			if err != nil {
				fatal(err)
			}
			m := tui.New(eng, filepath.Base(args[0]), cfg.Retrieval.TopK)
			if _, err := tea.NewProgram(m).Run(); err != nil {
				log.Fatal(err)
			}
		},
	}
}

// mustManager loads the config and assembles the pipeline components.
// Provider selection happens here, once, at construction time.
func mustManager() (*engine.Manager, *config.AppConfig) {
	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "ollama", "":
		emb = embedollama.NewClient(embedollama.Config{
			Host:    cfg.Embedder.Ollama.Host,
			Model:   cfg.Embedder.Ollama.Model,
			Timeout: time.Duration(cfg.Embedder.Ollama.TimeoutSecs) * time.Second,
		})
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := embedopenai.NewClient(embedopenai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var chat domain.ChatModel
	switch cfg.Chat.Type {
	case "ollama", "":
		chat = llmollama.NewClient(llmollama.Config{
			Host:    cfg.Chat.Ollama.Host,
			Model:   cfg.Chat.Ollama.Model,
			Timeout: time.Duration(cfg.Chat.Ollama.TimeoutSecs) * time.Second,
		})
	case "openai":
		if cfg.Chat.OpenAI == nil {
			log.Fatalf("openai chat config missing")
		}
		client, err := llmopenai.NewClient(llmopenai.Config{
			BaseURL:   cfg.Chat.OpenAI.BaseURL,
			APIKeyEnv: cfg.Chat.OpenAI.APIKeyEnv,
			Model:     cfg.Chat.OpenAI.Model,
			Timeout:   time.Duration(cfg.Chat.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai chat init failed: %v", err)
		}
		chat = client
	default:
		log.Fatalf("unknown chat provider: %s", cfg.Chat.Type)
	}

	var newStore func(signature string) domain.PersistentStore
	switch cfg.Index.Type {
	case "file", "":
		newStore = func(signature string) domain.PersistentStore {
			return file.NewStore(filepath.Join(cfg.Index.Dir, signature+".json"))
		}
	case "memory":
		newStore = func(signature string) domain.PersistentStore {
			return memory.NewStore()
		}
	case "qdrant":
		if cfg.Index.Qdrant == nil {
			log.Fatalf("qdrant config missing")
		}
		newStore = func(signature string) domain.PersistentStore {
			return qdrant.NewStore(qdrant.Config{
				URL:        cfg.Index.Qdrant.URL,
				APIKey:     cfg.Index.Qdrant.APIKey,
				Collection: "pdfqa-" + signature,
				Timeout:    time.Duration(cfg.Index.Qdrant.TimeoutSecs) * time.Second,
			})
		}
	default:
		log.Fatalf("unknown index type: %s", cfg.Index.Type)
	}

	ch := chunker.NewRecursiveChunker(cfg.Chunker.Size, cfg.Chunker.Overlap)
	return engine.NewManager(ch, emb, chat, cfg.Retrieval.TopK, newStore), cfg
}

func mustRead(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to read %s: %v", path, err)
	}
	return data
}

// fatal prints a message appropriate to the failure class and exits.
func fatal(err error) {
	var extractErr *domain.ExtractionError
	var embedErr *domain.EmbeddingProviderError
	var loadErr *domain.IndexLoadError
	var chatErr *domain.CompletionProviderError
	switch {
	case errors.As(err, &extractErr):
		log.Fatalf("could not read the document: %v", err)
	case errors.As(err, &embedErr):
		log.Fatalf("embedding provider failed (check the service is running and credentials are set): %v", err)
	case errors.As(err, &loadErr):
		log.Fatalf("persisted index is unreadable; re-run with --rebuild: %v", err)
	case errors.As(err, &chatErr):
		log.Fatalf("language model failed (check the service is running and credentials are set): %v", err)
	default:
		log.Fatal(err)
	}
}
