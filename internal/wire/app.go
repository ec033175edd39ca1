package wire

import (
	"context"
	"log"
	"os"

	"github.com/spf13/viper"

	"github.com/Dozuki/rag-guide-chat-poc/internal/answer"
	"github.com/Dozuki/rag-guide-chat-poc/internal/config"
	"github.com/Dozuki/rag-guide-chat-poc/internal/dozuki"
	"github.com/Dozuki/rag-guide-chat-poc/internal/ingest"
	"github.com/Dozuki/rag-guide-chat-poc/internal/store"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg    *viper.Viper
	Log    *log.Logger
	Store  store.Store
	Dozuki *dozuki.Client
	Ingest *ingest.Service
	Answer *answer.Service
}

// BuildApp wires dependencies with the provided config. The Dozuki
// client starts unauthenticated; a stored login token is applied when
// one exists.
func BuildApp(ctx context.Context, v *viper.Viper) (*App, error) {
	logger := log.New(os.Stdout, "guidechat ", log.LstdFlags)

	st, err := store.Open(ctx, "sqlite://"+config.DefaultDBPath(v))
	if err != nil {
		return nil, err
	}

	dz := dozuki.New(v.GetString("dozuki.base_url"), v.GetString("dozuki.app_id"))
	if token, err := st.GetSetting(ctx, "dozuki_token"); err == nil && token != "" {
		dz.SetToken(token)
	}

	ing := &ingest.Service{
		Client:   dz,
		Store:    st,
		Log:      logger,
		SiteID:   v.GetString("dozuki.site_id"),
		PageSize: v.GetInt("ingest.page_size"),
	}

	ans := &answer.Service{
		Store:  st,
		Gen:    buildGenerator(v),
		Guides: dz,
		Log:    logger,
		TopK:   v.GetInt("query.top_k"),
	}

	return &App{
		Cfg:    v,
		Log:    logger,
		Store:  st,
		Dozuki: dz,
		Ingest: ing,
		Answer: ans,
	}, nil
}

// buildGenerator picks the completion backend. Without a configured
// endpoint the answer service quotes retrieved passages directly.
func buildGenerator(v *viper.Viper) answer.Generator {
	if url := v.GetString("llm.url"); url != "" {
		return answer.NewHTTPGenerator(url, v.GetString("llm.model"), v.GetInt("llm.max_tokens"))
	}
	return answer.Extractive{}
}

// Close releases App resources.
func (a *App) Close() error {
	return a.Store.Close()
}
