package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/firodj/clipperlift/internal"
)

type docFunc func() (*internal.Document, error)

func disasmCommand(getDoc docFunc) *ffcli.Command {
	fs := flag.NewFlagSet("disasm", flag.ExitOnError)
	var addr uint
	fs.UintVar(&addr, "addr", 0, "start address, 0 = module entry")

	return &ffcli.Command{
		Name:       "disasm",
		ShortUsage: "disasm [-addr address]",
		ShortHelp:  "decode one basic block run and print the listing",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			doc, err := getDoc()
			if err != nil {
				return err
			}
			start := uint32(addr)
			if start == 0 {
				start = doc.EntryAddr
			}
			if doc.Disasm(start) == nil {
				return errors.New("invalid addr, missing instruction")
			}
			doc.ProcessBB(start, 0, doc.GetPrintLines)
			return nil
		},
	}
}

func liftCommand(getDoc docFunc) *ffcli.Command {
	fs := flag.NewFlagSet("lift", flag.ExitOnError)
	var addr uint
	fs.UintVar(&addr, "addr", 0, "start address, 0 = module entry")

	return &ffcli.Command{
		Name:       "lift",
		ShortUsage: "lift [-addr address]",
		ShortHelp:  "lift one basic block run and print its IL",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			doc, err := getDoc()
			if err != nil {
				return err
			}
			start := uint32(addr)
			if start == 0 {
				start = doc.EntryAddr
			}
			doc.ProcessBB(start, 0, func(state internal.BBAnalState) {
				color.Cyan("%s:\t// 0x%08x", doc.GetLabelName(state.BBAddr), state.BBAddr)
				ops, err := doc.LiftBB(state)
				if err != nil {
					color.Yellow("WARNING:\t%v", err)
				}
				for _, op := range ops {
					fmt.Printf("\t%s\n", op)
				}
			})
			return nil
		},
	}
}

func sweepCommand(getDoc docFunc) *ffcli.Command {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	var addr uint
	fs.UintVar(&addr, "addr", 0, "entry address, 0 = module entry")

	return &ffcli.Command{
		Name:       "sweep",
		ShortUsage: "sweep [-addr address]",
		ShortHelp:  "discover functions and blocks from the entry, then dump them",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			doc, err := getDoc()
			if err != nil {
				return err
			}
			entry := uint32(addr)
			if entry == 0 {
				entry = doc.EntryAddr
			}
			doc.AnalyzeFrom(entry)

			doc.FunManager.Each(func(fun *internal.Function) {
				color.Cyan("func name=%s addr=0x%x size=%d last=0x%x", fun.Name, fun.Address, fun.Size, fun.LastAddress())
				for _, bb_addr := range fun.BBAddresses {
					doc.ProcessBB(bb_addr, 0, doc.GetPrintLines)
				}
			})

			color.Cyan("call graph:")
			doc.Graph.Dump()
			return nil
		},
	}
}

func saveCommand(getDoc docFunc) *ffcli.Command {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	var addr uint
	var dsn string
	fs.UintVar(&addr, "addr", 0, "entry address, 0 = module entry")
	fs.StringVar(&dsn, "db", "clipperlift.db", "sqlite database path")

	return &ffcli.Command{
		Name:       "save",
		ShortUsage: "save [-addr address] [-db path]",
		ShortHelp:  "analyze from the entry and persist the session to sqlite",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			doc, err := getDoc()
			if err != nil {
				return err
			}
			entry := uint32(addr)
			if entry == 0 {
				entry = doc.EntryAddr
			}
			doc.AnalyzeFrom(entry)

			var addrs []uint32
			doc.InstrManager.Each(func(line *internal.Line) {
				addrs = append(addrs, line.Instr.Address)
			})
			for _, a := range addrs {
				if _, err := doc.LiftAt(a, nil); err != nil {
					color.Yellow("WARNING:\t%v", err)
				}
			}

			repo := internal.NewSQLRepository(dsn)
			defer repo.Close()

			if err := repo.CreateTables(ctx); err != nil {
				return err
			}
			if err := repo.SaveDocument(ctx, doc); err != nil {
				return err
			}
			fmt.Printf("saved session %s to %s\n", repo.Session(), dsn)
			return nil
		},
	}
}

func main() {
	appName := filepath.Base(os.Args[0])

	rootFlagSet := flag.NewFlagSet(appName, flag.ExitOnError)
	docPath := rootFlagSet.String("doc", ".", "document directory holding clipper.yaml and the memory image")

	var doc *internal.Document
	getDoc := func() (*internal.Document, error) {
		if doc != nil {
			return doc, nil
		}
		var err error
		doc, err = internal.NewDocument(*docPath)
		return doc, err
	}

	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	defer func() {
		signal.Stop(quit)
		cancel()
	}()

	go func() {
		<-quit
		cancel()
	}()

	root := &ffcli.Command{
		ShortUsage: appName + " [flags] <subcommand>",
		FlagSet:    rootFlagSet,
		Subcommands: []*ffcli.Command{
			disasmCommand(getDoc),
			liftCommand(getDoc),
			sweepCommand(getDoc),
			saveCommand(getDoc),
			serveCommand(getDoc),
		},
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
	}

	err := root.ParseAndRun(ctx, os.Args[1:])
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		color.Red("ERROR: %v", err)
		os.Exit(1)
	}
}
