package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/apiclient"
)

var beritaListOpts apiclient.BeritaListOptions

var beritaCmd = &cobra.Command{
	Use:   "berita",
	Short: "Kelola berita lewat API admin",
}

var beritaListCmd = &cobra.Command{
	Use:   "list",
	Short: "Tampilkan semua berita (terbaru dulu)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opContext(cmd)
		defer cancel()
		items, err := newClient().FetchBerita(ctx, beritaListOpts)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), items)
	},
}

var beritaStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Hitung berita per status dan kategori",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opContext(cmd)
		defer cancel()
		st, err := newClient().GetBeritaStats(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), st)
	},
}

var beritaGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Tampilkan satu berita",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opContext(cmd)
		defer cancel()
		b, err := newClient().GetBerita(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), b)
	},
}

var beritaDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Hapus berita",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opContext(cmd)
		defer cancel()
		if err := newClient().DeleteBerita(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "berita %s dihapus\n", args[0])
		return nil
	},
}

func init() {
	beritaListCmd.Flags().StringVarP(&beritaListOpts.Q, "query", "q", "", "Cari di judul/konten/penulis")
	beritaListCmd.Flags().StringVar(&beritaListOpts.Kategori, "kategori", "", "Filter kategori")
	beritaListCmd.Flags().StringVar(&beritaListOpts.Status, "status", "", "Filter status (draft|published)")

	beritaCmd.AddCommand(beritaListCmd, beritaStatsCmd, beritaGetCmd, beritaDeleteCmd)
}
