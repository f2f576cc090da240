package main

import (
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/fcdt/dttool"
)

type convertFunc func(path, outDir string, k dttool.Kind) (string, error)

func doDecode(s settings, paths []string) error {
	return convertAll(s, paths, "decode", dttool.DecodeFile)
}

func doEncode(s settings, paths []string) error {
	return convertAll(s, paths, "encode", dttool.EncodeFile)
}

// convertAll converts each file on its own goroutine.
// The first error is returned after all conversions have finished.
func convertAll(s settings, paths []string, verb string, convert convertFunc) error {
	err := checkOutDir(s.outDir)
	if err != nil {
		return err
	}

	var group errgroup.Group
	for _, path := range paths {
		path := path
		group.Go(func() error {
			dst, err := convert(path, s.outDir, s.kind)
			if err != nil {
				fmt.Printf("%v Failed to %v %q: %v\n", crossmark, verb, path, err)
				return err
			}
			fmt.Printf("%v %q saved as %q.\n", checkmark, path, dst)
			return nil
		})
	}
	return group.Wait()
}

func doVerify(s settings, paths []string) error {
	var group errgroup.Group
	for _, path := range paths {
		path := path
		group.Go(func() error {
			err := dttool.Verify(path, s.kind)
			if err != nil {
				fmt.Printf("%v %v\n", crossmark, err)
				return err
			}
			fmt.Printf("%v %q round-trips unchanged.\n", checkmark, path)
			return nil
		})
	}
	return group.Wait()
}

func checkOutDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("output path %q is not a directory", dir)
	}
	return nil
}
