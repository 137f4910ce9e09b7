package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	helper "studentpoints_client/internals/helpers"
	"studentpoints_client/internals/testkit/fakeapi"
)

func newDevCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "dev",
		Short:  "Công cụ phát triển",
		Hidden: true,
	}
	cmd.AddCommand(newFakeAPICommand())
	return cmd
}

func newFakeAPICommand() *cobra.Command {
	var (
		addr    string
		seed    bool
		secret  string
		origins []string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "fake-api",
		Short: "Chạy backend giả lập (in-memory) để thử CLI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := helper.NewLogger("development", "debug")
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			srv := fakeapi.New(
				fakeapi.WithSecret(secret),
				fakeapi.WithLogger(log),
				fakeapi.WithCORS(origins...),
				fakeapi.WithLoginLimit(limit, time.Minute),
			)
			if seed {
				if err := srv.SeedDemo(); err != nil {
					return err
				}
				log.Info("demo account seeded",
					zap.String("username", fakeapi.DemoUsername),
					zap.String("password", fakeapi.DemoPassword),
				)
			}

			app := srv.App()
			app.Server().ReadTimeout = 15 * time.Second
			app.Server().WriteTimeout = 30 * time.Second
			app.Server().IdleTimeout = 90 * time.Second

			// Start server non-blocking
			errCh := make(chan error, 1)
			go func() {
				log.Info("✅ Listening", zap.String("addr", addr))
				errCh <- app.Listen(addr)
			}()
			fmt.Fprintf(cmd.OutOrStdout(), "API: http://localhost%s%s\n", addr, fakeapi.Prefix)

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}

			// graceful shutdown
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return app.ShutdownWithContext(ctx)
		},
	}

	f := cmd.Flags()
	f.StringVar(&addr, "addr", ":8080", "địa chỉ lắng nghe")
	f.BoolVar(&seed, "seed", true, "tạo tài khoản và dữ liệu demo")
	f.StringVar(&secret, "secret", fakeapi.DefaultSecret, "khoá ký JWT")
	f.StringSliceVar(&origins, "cors", []string{"http://localhost:8081", "http://localhost:19006"}, "origin được phép (CORS)")
	f.IntVar(&limit, "login-limit", 5, "số lần đăng nhập tối đa mỗi phút theo IP (0 = không giới hạn)")
	return cmd
}
