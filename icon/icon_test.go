package icon

import (
	"testing"

	"github.com/mediaspawn/mediaspawn/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given a registered icon", t, func() {
		Convey("It renders for each variant", func() {
			for _, variant := range AvailableVariants() {
				Convey("variant="+variant, func() {
					viper.Set(key.IconsVariant, variant)
					So(Get(Enter), ShouldNotBeEmpty)
				})
			}
		})

		Convey("It returns empty for an unknown variant", func() {
			viper.Set(key.IconsVariant, "")
			So(Get(Enter), ShouldBeEmpty)
		})

		Convey("Unknown icons render empty", func() {
			viper.Set(key.IconsVariant, "plain")
			So(Get(Icon(99)), ShouldBeEmpty)
		})
	})
}
