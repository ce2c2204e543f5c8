package main

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/reusee/beat/beathost"
	"github.com/reusee/beat/cmds"
	"github.com/reusee/beat/logs"
	"github.com/reusee/beat/syncs"
	"github.com/reusee/beat/wavs"
)

var (
	seconds = cmds.Var[float64]("seconds", "render length in seconds, default 10")
	outDir  = cmds.Var[string]("out", "directory of rendered files, default the source directory")
)

func init() {
	var files []string
	cmds.Define("render", cmds.Func(func(file string) {
		if len(files) == 0 {
			actions = append(actions, func(
				logger logs.Logger,
				newSpan logs.NewSpan,
				newSession beathost.NewSession,
			) {
				ce(renderFiles(context.Background(), logger, newSpan, newSession, files))
			})
		}
		files = append(files, file)
	}).Desc("render a program file to a wav file next to it, may be repeated"))
}

func renderFiles(
	ctx context.Context,
	logger logs.Logger,
	newSpan logs.NewSpan,
	newSession beathost.NewSession,
	files []string,
) error {
	length := *seconds
	if length <= 0 {
		length = 10
	}

	sem := syncs.NewSemaphore(runtime.NumCPU())
	var wg sync.WaitGroup
	errs := make([]error, len(files))
	for i, file := range files {
		sem.Acquire()
		wg.Go(func() {
			defer sem.Release()
			ctx, _ := newSpan(ctx, "")
			errs[i] = logs.WrapSpan(ctx, renderFile(ctx, logger, newSession(), file, length))
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func renderFile(
	ctx context.Context,
	logger logs.Logger,
	session *beathost.Session,
	file string,
	length float64,
) error {
	source, err := readSource(file)
	if err != nil {
		return err
	}
	if err := session.Compile(source); err != nil {
		return err
	}

	outPath := strings.TrimSuffix(file, filepath.Ext(file)) + ".wav"
	if *outDir != "" {
		outPath = filepath.Join(*outDir, filepath.Base(outPath))
	}
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	numFrames := int(length * float64(session.SampleRate()))
	logger.InfoContext(ctx, "render",
		"source", file,
		"out", outPath,
		"frames", numFrames,
	)
	if err := wavs.Render(ctx, session, out, numFrames); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	diag := session.Diagnostics()
	if diag.RuntimeErrors > 0 {
		logger.WarnContext(ctx, "runtime errors",
			"source", file,
			"count", diag.RuntimeErrors,
			"last", diag.RuntimeError,
		)
	}
	return nil
}
