package version

import (
	"context"
	"fmt"
	"time"

	"github.com/anisan-cli/anipahe/color"
	"github.com/anisan-cli/anipahe/constant"
	"github.com/anisan-cli/anipahe/icon"
	"github.com/anisan-cli/anipahe/key"
	"github.com/anisan-cli/anipahe/style"
	"github.com/anisan-cli/anipahe/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release than the running one exists.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	version, err := Latest(ctx)
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(version, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/anisan-cli/"+constant.App+"/releases/tag/v"+version),
	)
}
