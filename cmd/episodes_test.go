package cmd

import (
	"os"
	"testing"

	"github.com/anisan-cli/anipahe/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/cobra"
)

func TestOutputWriter(t *testing.T) {
	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{}
		cmd.Flags().StringP("output", "o", "", "")
		return cmd
	}

	Convey("Without --output stdout is used", t, func() {
		out, closeOut := outputWriter(newCmd())
		So(out, ShouldEqual, os.Stdout)
		closeOut()
	})

	Convey("With --output the file is written and closed", t, func() {
		cmd := newCmd()
		lo.Must0(cmd.Flags().Set("output", "/out/episodes.json"))
		lo.Must0(filesystem.API().MkdirAll("/out", 0o755))

		out, closeOut := outputWriter(cmd)
		_, err := out.Write([]byte("[]"))
		So(err, ShouldBeNil)
		closeOut()

		So(string(lo.Must(filesystem.API().ReadFile("/out/episodes.json"))), ShouldEqual, "[]")

		_, err = out.Write([]byte("more"))
		So(err, ShouldNotBeNil)
	})
}
