package describe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnoverse/rangelogic/rangeset"
)

type mockDescribeEngine struct {
	mock.Mock
}

func (m *mockDescribeEngine) Run(filePath string) ([]Description, error) {
	args := m.Called(filePath)
	return args.Get(0).([]Description), args.Error(1)
}

func (m *mockDescribeEngine) RunSource(source []byte) ([]Description, error) {
	args := m.Called(source)
	return args.Get(0).([]Description), args.Error(1)
}

func createTempFiles(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = writeFile(t, dir, name, "scripts: []\n")
	}
	return paths
}

func TestProcessFile(t *testing.T) {
	t.Parallel()
	expected := []Description{{File: "a.yaml", Script: "a", Values: map[string]*rangeset.List{"x": rangeset.Of(1)}}}
	engine := new(mockDescribeEngine)
	engine.On("Run", "a.yaml").Return(expected, nil)

	descs, err := ProcessFile(engine, "a.yaml")

	assert.NoError(t, err)
	assert.Equal(t, expected, descs)
	engine.AssertExpectations(t)
}

func TestProcessSource(t *testing.T) {
	t.Parallel()
	source := []byte("scripts: []")
	expected := []Description{{Script: "inline"}}
	engine := new(mockDescribeEngine)
	engine.On("RunSource", source).Return(expected, nil)

	descs, err := ProcessSource(engine, source)

	assert.NoError(t, err)
	assert.Equal(t, expected, descs)
	engine.AssertExpectations(t)
}

func TestProcessPath(t *testing.T) {
	t.Parallel()
	logger, _ := zap.NewProduction()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	paths := createTempFiles(t, dir, "b.yaml", filepath.Join("nested", "a.yml"), "notes.txt")

	engine := new(mockDescribeEngine)
	engine.On("Run", paths[0]).Return([]Description{{File: paths[0], Script: "b"}}, nil)
	engine.On("Run", paths[1]).Return([]Description{{File: paths[1], Script: "a"}}, nil)

	descs, err := ProcessPath(context.Background(), logger, engine, dir, ProcessFile)

	require.NoError(t, err)
	require.Len(t, descs, 2)
	// results are ordered by file path
	assert.Equal(t, "b", descs[0].Script)
	assert.Equal(t, "a", descs[1].Script)
	engine.AssertExpectations(t)
	engine.AssertNotCalled(t, "Run", paths[2])
}

func TestProcessPathSkipsFailingFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	paths := createTempFiles(t, dir, "good.yaml", "bad.yaml")

	engine := new(mockDescribeEngine)
	engine.On("Run", paths[0]).Return([]Description{{Script: "good"}}, nil)
	engine.On("Run", paths[1]).Return([]Description(nil), errors.New("broken"))

	descs, err := ProcessPath(context.Background(), nil, engine, dir, ProcessFile)

	require.NoError(t, err)
	require.Len(t, descs, 1)
	assert.Equal(t, "good", descs[0].Script)
}

func TestProcessPathSingleFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	paths := createTempFiles(t, dir, "one.yaml", "readme.md")

	engine := new(mockDescribeEngine)
	engine.On("Run", paths[0]).Return([]Description{{Script: "one"}}, nil)

	descs, err := ProcessPath(context.Background(), nil, engine, paths[0], ProcessFile)
	require.NoError(t, err)
	assert.Len(t, descs, 1)

	descs, err = ProcessPath(context.Background(), nil, engine, paths[1], ProcessFile)
	require.NoError(t, err)
	assert.Empty(t, descs)

	_, err = ProcessPath(context.Background(), nil, engine, filepath.Join(dir, "missing.yaml"), ProcessFile)
	assert.Error(t, err)
	engine.AssertExpectations(t)
}

func TestProcessPathContextCancellation(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	for i := 0; i < 10; i++ {
		writeFile(t, dir, fmt.Sprintf("script%d.yaml", i), "scripts: []\n")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := new(mockDescribeEngine)
	descs, err := ProcessPath(ctx, nil, engine, dir, ProcessFile)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, descs)
	engine.AssertNotCalled(t, "Run", mock.Anything)
}

func TestProcessFiles(t *testing.T) {
	t.Parallel()
	logger, _ := zap.NewProduction()
	dir := t.TempDir()
	paths := createTempFiles(t, dir, "a.yaml", "b.yaml")

	engine := new(mockDescribeEngine)
	engine.On("Run", paths[0]).Return([]Description{{Script: "a"}}, nil)
	engine.On("Run", paths[1]).Return([]Description{{Script: "b"}}, nil)

	descs, err := ProcessFiles(context.Background(), logger, engine, paths, ProcessFile)
	require.NoError(t, err)
	require.Len(t, descs, 2)
	assert.Equal(t, "a", descs[0].Script)
	assert.Equal(t, "b", descs[1].Script)

	_, err = ProcessFiles(context.Background(), logger, engine, []string{filepath.Join(dir, "missing")}, ProcessFile)
	assert.Error(t, err)
	engine.AssertExpectations(t)
}

func TestProcessFilesWithEngine(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "scripts.yaml", testScenario)

	descs, err := ProcessFiles(context.Background(), nil, NewEngine(DefaultConfig()), []string{path}, ProcessFile)
	require.NoError(t, err)
	require.Len(t, descs, 2)
	assert.Equal(t, path, descs[0].File)
	assert.Equal(t, "knight bonus", descs[0].Script)
}
