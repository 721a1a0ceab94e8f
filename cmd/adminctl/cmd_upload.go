package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/constants"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers/cdn"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload gambar ke CDN lewat API admin, cetak URL-nya",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := opContext(cmd)
		defer cancel()

		res, err := newClient().UploadImage(ctx, cdn.File{
			Name: filepath.Base(args[0]),
			Type: constants.DetectImageTypeFromExt(args[0]),
			Data: data,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}
