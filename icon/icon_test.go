package icon

import (
	"testing"

	"github.com/anisan-cli/anipahe/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given every registered icon", t, func() {
		defer viper.Set(key.IconsVariant, "")

		Convey("It renders for each variant", func() {
			for _, variant := range AvailableVariants() {
				viper.Set(key.IconsVariant, variant)
				for i := range icons {
					So(Get(i), ShouldNotBeEmpty)
				}
			}
		})

		Convey("An unknown variant renders nothing", func() {
			viper.Set(key.IconsVariant, "unknown")
			So(Get(Success), ShouldBeEmpty)
		})

		Convey("An unknown icon renders nothing", func() {
			viper.Set(key.IconsVariant, plain)
			So(Get(Icon(-1)), ShouldBeEmpty)
		})
	})
}
