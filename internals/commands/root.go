package commands

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"studentpoints_client/internals/configs"
	helper "studentpoints_client/internals/helpers"
)

type globalFlags struct {
	configPath  string
	apiURL      string
	storagePath string
	retries     uint64
}

// loader membangun App sekali, saat command pertama kali membutuhkannya.
// Command yang tidak butuh storage (mis. dev fake-api) tidak membuka apa pun.
type loader struct {
	flags globalFlags
	app   *App
}

func (l *loader) App() (*App, error) {
	if l.app != nil {
		return l.app, nil
	}

	cfg, err := configs.Load(l.flags.configPath)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(l.flags.apiURL); v != "" {
		cfg.API.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(l.flags.storagePath); v != "" {
		cfg.Storage.Path = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := helper.NewLogger(cfg.Env, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	app, err := NewApp(cfg, log)
	if err != nil {
		return nil, err
	}
	l.app = app
	return app, nil
}

func (l *loader) Close() {
	if l.app == nil {
		return
	}
	if err := l.app.Close(); err != nil {
		l.app.Log.Warn("close storage failed", zap.Error(err))
	}
	_ = l.app.Log.Sync()
	l.app = nil
}

func newRootCommand(l *loader, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "studentpoints",
		Short:         "Client điểm rèn luyện: đăng nhập, minh chứng, thông tin sinh viên",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(out)

	pf := root.PersistentFlags()
	pf.StringVar(&l.flags.configPath, "config", "", "file config YAML")
	pf.StringVar(&l.flags.apiURL, "api", "", "base URL API (override config)")
	pf.StringVar(&l.flags.storagePath, "storage", "", "path storage perangkat (override config)")
	pf.Uint64Var(&l.flags.retries, "retries", 0, "số lần thử lại khi mất kết nối (chỉ cho lệnh đọc)")

	root.AddCommand(
		newLoginCommand(l),
		newLogoutCommand(l),
		newWhoamiCommand(l),
		newEvidenceCommand(l),
		newProfileCommand(l),
		newPasswordCommand(l),
		newDevCommand(),
	)
	return root
}

// Execute menjalankan CLI dengan args (tanpa nama program). Error yang dikembalikan
// sudah siap ditampilkan lewat ErrorMessage.
func Execute(ctx context.Context, args []string, out io.Writer) error {
	l := &loader{}
	defer l.Close()

	root := newRootCommand(l, out)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
