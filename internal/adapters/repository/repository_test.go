package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/foil/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStore(t *testing.T) {
	Convey("Given an in-memory save store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()

		Convey("Loading a missing key returns ErrNotFound", func() {
			_, err := store.Load(ctx, "nope")
			So(err, ShouldEqual, repository.ErrNotFound)
		})

		Convey("Save then Load round-trips the blob", func() {
			So(store.Save(ctx, "k", []byte(`{"money":50}`)), ShouldBeNil)
			data, err := store.Load(ctx, "k")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"money":50}`)
		})

		Convey("Save replaces the previous value", func() {
			So(store.Save(ctx, "k", []byte("a")), ShouldBeNil)
			So(store.Save(ctx, "k", []byte("b")), ShouldBeNil)
			data, _ := store.Load(ctx, "k")
			So(string(data), ShouldEqual, "b")
		})

		Convey("Loaded blobs are copies, not aliases", func() {
			So(store.Save(ctx, "k", []byte("abc")), ShouldBeNil)
			data, _ := store.Load(ctx, "k")
			data[0] = 'x'
			again, _ := store.Load(ctx, "k")
			So(string(again), ShouldEqual, "abc")
		})

		Convey("Delete is idempotent", func() {
			So(store.Save(ctx, "k", []byte("a")), ShouldBeNil)
			So(store.Delete(ctx, "k"), ShouldBeNil)
			So(store.Delete(ctx, "k"), ShouldBeNil)
			_, err := store.Load(ctx, "k")
			So(err, ShouldEqual, repository.ErrNotFound)
		})
	})
}

func TestFileStore(t *testing.T) {
	Convey("Given a file save store", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		store, err := repository.NewFileStore(dir)
		So(err, ShouldBeNil)

		Convey("Save then Load round-trips through disk", func() {
			So(store.Save(ctx, "foil-save-v1", []byte(`{"money":50}`)), ShouldBeNil)
			data, err := store.Load(ctx, "foil-save-v1")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"money":50}`)

			Convey("And the save lands as a json file", func() {
				_, statErr := os.Stat(filepath.Join(dir, "foil-save-v1.json"))
				So(statErr, ShouldBeNil)
			})
		})

		Convey("Keys with unsafe characters are sanitized", func() {
			So(store.Save(ctx, "weird/../key", []byte("x")), ShouldBeNil)
			data, err := store.Load(ctx, "weird/../key")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "x")
		})

		Convey("Missing keys return ErrNotFound", func() {
			_, err := store.Load(ctx, "missing")
			So(err, ShouldEqual, repository.ErrNotFound)
		})

		Convey("Delete removes the file and tolerates repeats", func() {
			So(store.Save(ctx, "k", []byte("a")), ShouldBeNil)
			So(store.Delete(ctx, "k"), ShouldBeNil)
			So(store.Delete(ctx, "k"), ShouldBeNil)
			_, err := store.Load(ctx, "k")
			So(err, ShouldEqual, repository.ErrNotFound)
		})
	})
}
