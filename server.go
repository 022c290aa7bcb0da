package main

import (
	"context"
	"flag"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/firodj/clipperlift/clipper"
	"github.com/firodj/clipperlift/internal"
)

func parseAddr(c echo.Context) (uint32, error) {
	v, err := strconv.ParseUint(c.Param("addr"), 0, 32)
	return uint32(v), err
}

type lineJSON struct {
	Address  uint32 `json:"address"`
	Length   int    `json:"length"`
	Mnemonic string `json:"mnemonic"`
	Text     string `json:"text"`
}

func serveCommand(getDoc docFunc) *ffcli.Command {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var listen string
	fs.StringVar(&listen, "listen", ":1357", "listen address")

	return &ffcli.Command{
		Name:       "serve",
		ShortUsage: "serve [-listen address]",
		ShortHelp:  "expose the document over HTTP",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			doc, err := getDoc()
			if err != nil {
				return err
			}

			e := echo.New()
			e.HideBanner = true

			e.GET("/api/module", func(c echo.Context) error {
				return c.JSON(http.StatusOK, map[string]interface{}{
					"name":       doc.Name(),
					"entry_addr": doc.EntryAddr,
				})
			})

			e.GET("/api/disasm/:addr", func(c echo.Context) error {
				addr, err := parseAddr(c)
				if err != nil {
					return echo.NewHTTPError(http.StatusBadRequest, err.Error())
				}
				var lines []lineJSON
				doc.ProcessBB(addr, 0, func(state internal.BBAnalState) {
					for _, instr := range state.Lines {
						lines = append(lines, lineJSON{
							Address:  instr.Address,
							Length:   instr.Length,
							Mnemonic: instr.MnemonicText(),
							Text:     instr.String(),
						})
					}
				})
				return c.JSON(http.StatusOK, lines)
			})

			e.GET("/api/lift/:addr", func(c echo.Context) error {
				addr, err := parseAddr(c)
				if err != nil {
					return echo.NewHTTPError(http.StatusBadRequest, err.Error())
				}
				var texts []string
				doc.ProcessBB(addr, 0, func(state internal.BBAnalState) {
					ops, _ := doc.LiftBB(state)
					for _, op := range ops {
						texts = append(texts, op.String())
					}
				})
				return c.JSON(http.StatusOK, texts)
			})

			e.GET("/api/flow/:addr", func(c echo.Context) error {
				addr, err := parseAddr(c)
				if err != nil {
					return echo.NewHTTPError(http.StatusBadRequest, err.Error())
				}
				line := doc.Disasm(addr)
				if line == nil {
					return echo.NewHTTPError(http.StatusNotFound, "no instruction")
				}
				flow := clipper.ClassifyFlow(line.Instr)
				return c.JSON(http.StatusOK, map[string]interface{}{
					"kind":       flow.Kind.String(),
					"target":     flow.Target,
					"has_target": flow.HasTarget,
					"delay_slot": flow.DelaySlot,
					"flags_read": line.Instr.Cond.Flags().String(),
					"flags_set":  line.Instr.Flags.String(),
				})
			})

			e.GET("/api/functions", func(c echo.Context) error {
				type funJSON struct {
					Name    string `json:"name"`
					Address uint32 `json:"address"`
					Size    uint32 `json:"size"`
				}
				var funs []funJSON
				doc.FunManager.Each(func(fun *internal.Function) {
					funs = append(funs, funJSON{Name: fun.Name, Address: fun.Address, Size: fun.Size})
				})
				return c.JSON(http.StatusOK, funs)
			})

			go func() {
				<-ctx.Done()
				e.Shutdown(context.Background())
			}()

			err = e.Start(listen)
			if err == http.ErrServerClosed {
				return nil
			}
			return err
		},
	}
}
