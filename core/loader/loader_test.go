package loader_test

import (
	"errors"
	"testing"

	"schedule-reconciler/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type fakeFeature struct {
	name    string
	enabled bool
	loadErr error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.loadErr
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("LoadsEnabledFeatures", func(t *testing.T) {
		mgr := loader.NewManager()
		a := &fakeFeature{name: "a", enabled: true}
		b := &fakeFeature{name: "b", enabled: true}
		mgr.Register(a)
		mgr.Register(b)

		err := mgr.LoadAll(fiber.New())
		assert.NoError(t, err)
		assert.True(t, a.loaded)
		assert.True(t, b.loaded)
	})

	t.Run("SkipsDisabledFeatures", func(t *testing.T) {
		mgr := loader.NewManager()
		disabled := &fakeFeature{name: "off", enabled: false}
		mgr.Register(disabled)

		err := mgr.LoadAll(fiber.New())
		assert.NoError(t, err)
		assert.False(t, disabled.loaded)
	})

	t.Run("StopsOnFirstError", func(t *testing.T) {
		mgr := loader.NewManager()
		bad := &fakeFeature{name: "bad", enabled: true, loadErr: errors.New("boom")}
		after := &fakeFeature{name: "after", enabled: true}
		mgr.Register(bad)
		mgr.Register(after)

		err := mgr.LoadAll(fiber.New())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "bad")
		assert.False(t, after.loaded)
	})

	t.Run("EmptyManager", func(t *testing.T) {
		mgr := loader.NewManager()
		assert.NoError(t, mgr.LoadAll(fiber.New()))
	})
}
