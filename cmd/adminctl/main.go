// Command adminctl manages berita and UMKM from the terminal, either through
// the admin HTTP API or directly against the configured document store.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/apiclient"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/configs"
	database "github.com/x1nx3r/iniwebkelurahan-admin/internals/databases"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore"
)

var (
	serverURL string
	timeout   time.Duration
	verbose   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "adminctl",
	Short: "Kelola berita dan UMKM kelurahan",
	Long: `adminctl memanggil API admin (berita, umkm, upload) atau langsung
ke document store untuk migrasi key dan seed.

Perintah remote memakai --server (default ADMIN_API_URL atau http://localhost:3000).
Perintah store memakai konfigurasi .env yang sama dengan server.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s",
		configs.GetEnv("ADMIN_API_URL", "http://localhost:3000"), "Base URL API admin")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Batas waktu operasi")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log detail")

	rootCmd.AddCommand(beritaCmd)
	rootCmd.AddCommand(umkmCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(serverURL)
}

func opContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

// openStore membuka store dari .env untuk perintah yang tidak lewat HTTP.
func openStore(ctx context.Context) (docstore.Store, *zap.Logger, error) {
	cfg := configs.LoadEnv()
	if !verbose {
		cfg.LogLevel = "warn"
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	log, err := configs.NewLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	store, err := database.OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return store, log, nil
}

func printJSON(w io.Writer, v any) error {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
