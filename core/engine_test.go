/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package core

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewSystem(t *testing.T) {
	system := NewSystem()
	assert.NotNil(t, system)
	assert.Empty(t, system.engines)
}

func TestSystem_Start(t *testing.T) {
	ctrl := gomock.NewController(t)

	r := NewMockRunnable(ctrl)
	r.EXPECT().Start()

	system := NewSystem()
	system.RegisterEngine(TestEngine{})
	system.RegisterEngine(r)
	assert.NoError(t, system.Start())
}

func TestSystem_Shutdown(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		r := NewMockRunnable(ctrl)
		r.EXPECT().Shutdown()

		system := NewSystem()
		system.RegisterEngine(TestEngine{})
		system.RegisterEngine(r)
		assert.NoError(t, system.Shutdown())
	})
	t.Run("reverse order of registration", func(t *testing.T) {
		var calls []string
		system := NewSystem()
		system.RegisterEngine(&TestEngine{TestConfig: TestEngineConfig{Key: "first"}, ShutdownCalls: &calls})
		system.RegisterEngine(&TestEngine{TestConfig: TestEngineConfig{Key: "second"}, ShutdownCalls: &calls})

		require.NoError(t, system.Shutdown())

		assert.Equal(t, []string{"second", "first"}, calls)
	})
	t.Run("error does not stop shutting down other engines", func(t *testing.T) {
		var calls []string
		system := NewSystem()
		system.RegisterEngine(&TestEngine{TestConfig: TestEngineConfig{Key: "first"}, ShutdownCalls: &calls})
		system.RegisterEngine(&TestEngine{TestConfig: TestEngineConfig{Key: "second"}, ShutdownCalls: &calls, ShutdownError: true})

		err := system.Shutdown()

		assert.EqualError(t, err, "failure")
		assert.Len(t, calls, 2)
	})
}

func TestSystem_Configure(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		r := NewMockConfigurable(ctrl)
		r.EXPECT().Configure(gomock.Any())

		system := NewSystem()
		system.RegisterEngine(TestEngine{})
		system.RegisterEngine(r)
		assert.NoError(t, system.Configure())
	})
	t.Run("error", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		r := NewMockConfigurable(ctrl)
		r.EXPECT().Configure(gomock.Any()).Return(errors.New("failed"))

		system := NewSystem()
		system.RegisterEngine(r)
		assert.EqualError(t, system.Configure(), "failed")
	})
}

func TestSystem_Diagnostics(t *testing.T) {
	ctrl := gomock.NewController(t)

	r := NewMockDiagnosable(ctrl)
	r.EXPECT().Diagnostics().Return([]DiagnosticResult{&GenericDiagnosticResult{Title: "Result"}})

	system := NewSystem()
	system.RegisterEngine(TestEngine{})
	system.RegisterEngine(r)
	assert.Len(t, system.Diagnostics(), 1)
}

func TestSystem_RegisterRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := NewMockRoutable(ctrl)

	system := NewSystem()
	system.RegisterRoutes(r)

	assert.Len(t, system.Routers, 1)
}

func TestSystem_VisitEnginesE(t *testing.T) {
	ctl := System{
		engines: []Engine{},
	}
	ctl.RegisterEngine(&TestEngine{})
	ctl.RegisterEngine(&TestEngine{})
	expectedErr := errors.New("function should stop because an error occurred")
	timesCalled := 0
	actualErr := ctl.VisitEnginesE(func(engine Engine) error {
		timesCalled++
		return expectedErr
	})
	assert.Equal(t, 1, timesCalled)
	assert.Equal(t, expectedErr, actualErr)
}

func TestSystem_Load(t *testing.T) {
	defer reset()
	e := &TestEngine{}
	ctl := System{
		engines: []Engine{e},
		Config:  NewServerConfig(),
	}
	flags := FlagSet()
	flags.AddFlagSet(testFlagSet())
	os.Args = []string{"command", "--testengine.key", "value", "--testengine.sub.test", "nested"}
	require.NoError(t, flags.Parse(os.Args[1:]))

	require.NoError(t, ctl.Load(flags))

	assert.Equal(t, "value", e.TestConfig.Key)
	assert.Equal(t, "nested", e.TestConfig.Sub.Test)
	assert.Equal(t, []string{"default", "default"}, e.TestConfig.List)
}
