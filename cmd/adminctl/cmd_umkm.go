package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/apiclient"
	umkmService "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/service"
)

var (
	umkmListOpts apiclient.UMKMListOptions
	migrateDry   bool
)

var umkmCmd = &cobra.Command{
	Use:   "umkm",
	Short: "Kelola UMKM",
}

var umkmListCmd = &cobra.Command{
	Use:   "list",
	Short: "Tampilkan UMKM urut nama",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opContext(cmd)
		defer cancel()
		items, err := newClient().FetchUMKM(ctx, umkmListOpts)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), items)
	},
}

var umkmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Hitung UMKM aktif, nonaktif dan unggulan",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opContext(cmd)
		defer cancel()
		st, err := newClient().GetUMKMStats(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), st)
	},
}

var umkmGetCmd = &cobra.Command{
	Use:   "get <slug>",
	Short: "Tampilkan satu UMKM",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opContext(cmd)
		defer cancel()
		m, err := newClient().GetUMKM(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), m)
	},
}

var umkmDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Hapus UMKM berdasarkan key penyimpanan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opContext(cmd)
		defer cancel()
		if err := newClient().DeleteUMKM(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "umkm %s dihapus\n", args[0])
		return nil
	},
}

var umkmMigrateCmd = &cobra.Command{
	Use:   "migrate-keys",
	Short: "Samakan key penyimpanan UMKM dengan slug kanonik",
	Long: `Memindahkan setiap UMKM yang key dokumennya berbeda dari slug kanonik
(field slug bila valid, selain itu slug dari nama). Key tujuan yang sudah
terpakai dilaporkan sebagai conflict dan tidak disentuh.

Berjalan langsung ke store (kredensial dari .env).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opContext(cmd)
		defer cancel()

		store, log, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		report, err := umkmService.NewUMKMService(store, log).MigrateCanonicalKeys(ctx, migrateDry)
		if report != nil {
			if perr := printJSON(cmd.OutOrStdout(), report); perr != nil {
				return perr
			}
		}
		return err
	},
}

func init() {
	umkmListCmd.Flags().StringVar(&umkmListOpts.Kategori, "kategori", "", "Filter kategori")
	umkmListCmd.Flags().StringVar(&umkmListOpts.Status, "status", "", "Filter status (active|inactive)")
	umkmListCmd.Flags().IntVar(&umkmListOpts.Limit, "limit", 0, "Jumlah maksimum (0 = semua)")
	umkmListCmd.Flags().StringVar(&umkmListOpts.After, "after", "", "Lanjut setelah docId ini")

	umkmMigrateCmd.Flags().BoolVar(&migrateDry, "dry-run", false, "Hanya laporkan, jangan tulis")

	umkmCmd.AddCommand(umkmListCmd, umkmStatsCmd, umkmGetCmd, umkmDeleteCmd, umkmMigrateCmd)
}
