package page

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDocument(t *testing.T) {
	Convey("Given a document with a container", t, func() {
		doc := NewDocument()
		stage := doc.Add("stage", 640, 360)

		Convey("It can be found by id", func() {
			found, ok := doc.GetElementByID("stage")
			So(ok, ShouldBeTrue)
			So(found, ShouldEqual, stage)
			So(found.OffsetWidth(), ShouldEqual, 640)
			So(found.OffsetHeight(), ShouldEqual, 360)

			_, ok = doc.GetElementByID("missing")
			So(ok, ShouldBeFalse)
		})

		Convey("Children can be appended and removed", func() {
			wrapper := doc.CreateElement("wrapper")
			caption := doc.CreateElement("caption")
			wrapper.AppendChild(caption)
			stage.AppendChild(wrapper)

			So(stage.Contains(wrapper), ShouldBeTrue)
			So(wrapper.Parent(), ShouldEqual, stage)
			So(wrapper.Children(), ShouldResemble, []*Element{caption})
			So(doc.IDs(), ShouldResemble, []string{"caption", "stage", "wrapper"})

			So(stage.RemoveChild(wrapper), ShouldBeTrue)
			So(stage.RemoveChild(wrapper), ShouldBeFalse)
			So(wrapper.Parent(), ShouldBeNil)

			Convey("Moving a child detaches it from its old parent", func() {
				other := doc.Add("other", 1, 1)
				stage.AppendChild(caption)
				So(wrapper.Contains(caption), ShouldBeFalse)
				So(stage.Contains(caption), ShouldBeTrue)

				other.AppendChild(caption)
				So(stage.Contains(caption), ShouldBeFalse)
			})
		})

		Convey("Removing an element forgets its subtree", func() {
			wrapper := doc.CreateElement("wrapper")
			wrapper.AppendChild(doc.CreateElement("caption"))
			stage.AppendChild(wrapper)

			doc.Remove("wrapper")
			So(stage.Contains(wrapper), ShouldBeFalse)
			So(doc.IDs(), ShouldResemble, []string{"stage"})

			doc.Remove("stage")
			So(doc.IDs(), ShouldBeEmpty)
		})

		Convey("Elements carry text and display", func() {
			stage.SetText("hello")
			stage.SetDisplay(DisplayNone)
			So(stage.Text(), ShouldEqual, "hello")
			So(stage.Hidden(), ShouldBeTrue)
			stage.SetDisplay("")
			So(stage.Hidden(), ShouldBeFalse)
		})
	})
}

func TestGUID(t *testing.T) {
	Convey("GUIDs are prefixed and unique", t, func() {
		a, b := GUID("mediaSpawnerdiv-"), GUID("mediaSpawnerdiv-")
		So(strings.HasPrefix(a, "mediaSpawnerdiv-"), ShouldBeTrue)
		So(a, ShouldNotEqual, b)
	})
}
