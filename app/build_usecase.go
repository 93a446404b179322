package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/cflow/domain"
	"github.com/ludo-technologies/cflow/internal/reporter"
)

// BuildUseCase orchestrates one graph construction run: discover
// files, build graphs per file, render the report.
type BuildUseCase struct {
	service  domain.CFGService
	reader   domain.FileReader
	writer   domain.ReportWriter
	progress domain.ProgressManager
}

// NewBuildUseCase creates a build use case with its collaborators
func NewBuildUseCase(
	service domain.CFGService,
	reader domain.FileReader,
	writer domain.ReportWriter,
	progress domain.ProgressManager,
) *BuildUseCase {
	return &BuildUseCase{
		service:  service,
		reader:   reader,
		writer:   writer,
		progress: progress,
	}
}

// Execute runs the build pipeline for the request. Per-file failures
// are recorded in the response rather than aborting the run; the error
// return is reserved for request validation, discovery, and rendering
// failures.
func (uc *BuildUseCase) Execute(ctx context.Context, req domain.BuildRequest) (*domain.BuildResponse, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, err
	}

	files, err := uc.reader.CollectSourceFiles(req.Paths, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no source files found in the specified paths", nil)
	}

	uc.progress.Initialize(len(files))
	uc.progress.Start()
	defer uc.progress.Close()

	resp := &domain.BuildResponse{}
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			uc.progress.Complete(false)
			return nil, err
		}

		result, err := uc.service.BuildFile(ctx, file)
		if err != nil {
			resp.Files = append(resp.Files, domain.FileResult{FilePath: file, Error: err.Error()})
			resp.FailedFiles++
		} else {
			resp.Files = append(resp.Files, *result)
			resp.TotalGraphs += len(result.Graphs)
		}
		uc.progress.Update(i+1, len(files))
	}
	uc.progress.Complete(resp.FailedFiles == 0)

	rep := reporter.NewCFGReporter(req.OutputFormat, req.ShowUnreachable)
	err = uc.writer.Write(req.OutputWriter, req.OutputPath, func(w io.Writer) error {
		return rep.Write(w, resp)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (uc *BuildUseCase) validateRequest(req domain.BuildRequest) error {
	if len(req.Paths) == 0 {
		return domain.NewInvalidInputError("no input paths specified", nil)
	}
	if !req.OutputFormat.IsValid() {
		return domain.NewInvalidInputError(fmt.Sprintf("invalid output format: %s", req.OutputFormat), nil)
	}
	return nil
}
