package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/seeds"
)

var seedFiles seeds.Files

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Isi store dengan contoh berita dan UMKM dari file JSON",
	Long: `Membaca array JSON dengan bentuk body create masing-masing resource.
Berita dengan judul yang sama dan UMKM dengan slug yang sama dilewati.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := opContext(cmd)
		defer cancel()

		store, log, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		res, err := seeds.RunAllSeeds(ctx, store, log, seedFiles)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seed selesai: %d berita, %d umkm\n", res.Berita, res.UMKM)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFiles.Berita, "berita", seeds.DefaultBeritaFile, "File JSON berita (kosong = lewati)")
	seedCmd.Flags().StringVar(&seedFiles.UMKM, "umkm", seeds.DefaultUMKMFile, "File JSON UMKM (kosong = lewati)")
}
