package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/cflow/domain"
	"github.com/ludo-technologies/cflow/internal/config"
)

func TestBuildSource(t *testing.T) {
	svc := NewCFGService(config.DefaultConfig())
	ctx := context.Background()

	t.Run("SimpleProgram", func(t *testing.T) {
		result, err := svc.BuildSource(ctx, "test.src", []byte("a();\nb();"))
		require.NoError(t, err)

		require.Len(t, result.Graphs, 1)
		graph := result.Graphs[0]
		assert.Equal(t, "__main__", graph.Name)
		assert.Len(t, graph.Blocks, 1)
		assert.Empty(t, graph.Edges)
		assert.Equal(t, "bb0", graph.EntryID)
		assert.Equal(t, "bb0", graph.ExitID)
		assert.Equal(t, 1, graph.Complexity)
		assert.Equal(t, "low", graph.RiskLevel)
	})

	t.Run("BranchingProgram", func(t *testing.T) {
		result, err := svc.BuildSource(ctx, "test.src", []byte("if (x) { a(); } else { b(); }\nc();"))
		require.NoError(t, err)

		graph := result.Graphs[0]
		assert.Len(t, graph.Blocks, 4)
		assert.Len(t, graph.Edges, 4)
		assert.Equal(t, 2, graph.Complexity)
	})

	t.Run("FunctionGraphsOrderedAfterMain", func(t *testing.T) {
		source := "zeta() {\n  return 1;\n}\nalpha() {\n  return 2;\n}\nzeta();"
		result, err := svc.BuildSource(ctx, "test.src", []byte(source))
		require.NoError(t, err)

		require.Len(t, result.Graphs, 3)
		assert.Equal(t, "__main__", result.Graphs[0].Name)
		assert.Equal(t, "alpha", result.Graphs[1].Name)
		assert.Equal(t, "zeta", result.Graphs[2].Name)
	})

	t.Run("UnreachableCodeReported", func(t *testing.T) {
		result, err := svc.BuildSource(ctx, "test.src", []byte("return 1;\na();"))
		require.NoError(t, err)

		graph := result.Graphs[0]
		assert.Equal(t, 1, graph.UnreachableCount)

		unreachable := 0
		for _, block := range graph.Blocks {
			if !block.Reachable {
				unreachable++
			}
		}
		assert.Equal(t, 1, unreachable)
	})

	t.Run("SyntaxErrorMapped", func(t *testing.T) {
		_, err := svc.BuildSource(ctx, "broken.src", []byte("if (x { a(); }"))
		require.Error(t, err)

		var domainErr domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrCodeSyntaxError, domainErr.Code)
	})

	t.Run("StructuralErrorMapped", func(t *testing.T) {
		_, err := svc.BuildSource(ctx, "broken.src", []byte("break;"))
		require.Error(t, err)

		var domainErr domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrCodeStructuralError, domainErr.Code)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.BuildSource(canceled, "test.src", []byte("a();"))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("ComplexityDisabled", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Complexity.Enabled = false

		result, err := NewCFGService(cfg).BuildSource(ctx, "test.src", []byte("if (x) { a(); }\nb();"))
		require.NoError(t, err)
		assert.Zero(t, result.Graphs[0].Complexity)
		assert.Empty(t, result.Graphs[0].RiskLevel)
	})
}

func TestBuildFile(t *testing.T) {
	svc := NewCFGService(nil)

	t.Run("ExistingFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prog.src")
		require.NoError(t, os.WriteFile(path, []byte("while (x) { a(); }\nb();"), 0o644))

		result, err := svc.BuildFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, path, result.FilePath)
		require.Len(t, result.Graphs, 1)
		assert.Len(t, result.Graphs[0].Blocks, 3)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := svc.BuildFile(context.Background(), filepath.Join(t.TempDir(), "nope.src"))
		require.Error(t, err)

		var domainErr domain.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, domain.ErrCodeFileNotFound, domainErr.Code)
	})
}
