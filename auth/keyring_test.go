package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func init() {
	keyring.MockInit()
}

func TestAPIKey(t *testing.T) {
	Convey("Given an empty keyring", t, func() {
		So(DeleteAPIKey(), ShouldBeNil)

		Convey("APIKey returns an empty key without error", func() {
			token, err := APIKey()
			So(err, ShouldBeNil)
			So(token, ShouldBeEmpty)
		})

		Convey("When a key is stored", func() {
			So(SetAPIKey("gsk_test"), ShouldBeNil)

			Convey("It can be read back", func() {
				token, err := APIKey()
				So(err, ShouldBeNil)
				So(token, ShouldEqual, "gsk_test")
			})

			Convey("It can be deleted", func() {
				So(DeleteAPIKey(), ShouldBeNil)
				token, _ := APIKey()
				So(token, ShouldBeEmpty)
			})
		})
	})
}
