package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	json "github.com/goccy/go-json"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/drumkit/drumkit/internal/api"
	"github.com/drumkit/drumkit/internal/load"
	"github.com/drumkit/drumkit/internal/logging"
	"github.com/drumkit/drumkit/internal/store"
)

func loadsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loads",
		Short: "List and create loads without the board",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Cobra runs only the nearest PersistentPreRunE.
			if root := cmd.Root(); root.PersistentPreRunE != nil {
				if err := root.PersistentPreRunE(cmd, args); err != nil {
					return err
				}
			}
			logger, err := logging.New(logging.Stderr, e.cfg.Log.Level)
			if err != nil {
				return err
			}
			e.logger = logger
			e.client = e.newClient()
			return nil
		},
	}
	cmd.AddCommand(listLoadsCmd(e), createLoadCmd(e))
	return cmd
}

type loadSummary struct {
	ID       int64  `json:"id"`
	CustomID string `json:"customId"`
	Status   string `json:"status"`
	Customer string `json:"customer"`
	Created  string `json:"created"`
	Updated  string `json:"updated"`
	Carrier  string `json:"carrier"`
}

func summarize(rows []load.LoadData, e *env) []loadSummary {
	loc := e.cfg.UI.Location()
	return lo.Map(rows, func(d load.LoadData, _ int) loadSummary {
		return loadSummary{
			ID:       d.ID,
			CustomID: d.CustomID,
			Status:   lo.Ternary(d.StatusValue() == "", load.Placeholder, d.StatusValue()),
			Customer: load.CustomerLabel(d),
			Created:  load.FormatTimestamp(d.Created, loc),
			Updated:  load.FormatTimestamp(d.Updated, loc),
			Carrier:  load.CarrierLabel(d),
		}
	})
}

// list: print one page of loads.
func listLoadsCmd(e *env) *cobra.Command {
	var (
		start    int
		pageSize int
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of loads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if start < 0 {
				return errors.New("--start must not be negative")
			}
			if pageSize <= 0 {
				pageSize = e.cfg.List.PageSize
			}
			st := store.New(e.client, store.WithLogger(e.logger))
			entry := st.Query(cmd.Context(), api.ListParams{
				Start:    strconv.Itoa(start),
				PageSize: strconv.Itoa(pageSize),
			})
			if entry.Err != nil {
				return e.report(cmd.ErrOrStderr(), "Failed to load data:", entry.Err)
			}
			rows := summarize(entry.Data, e)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			return writeTable(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().IntVar(&start, "start", 0, "offset of the first load")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "loads per page (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// report prints err the way the board's error panel shows it and returns it.
func (e *env) report(w io.Writer, title string, err error) error {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, api.Describe(err))
	if api.IsTransport(err) {
		fmt.Fprintf(w, "Could not reach %s\n", e.cfg.API.BaseURL)
	}
	return err
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func writeTable(w io.Writer, rows []loadSummary) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No loads found.")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		Headers("LOAD ID", "STATUS", "CUSTOMER", "CREATED", "LAST UPDATED", "CARRIER").
		Rows(lo.Map(rows, func(r loadSummary, _ int) []string {
			id := strconv.FormatInt(r.ID, 10)
			if r.CustomID != "" {
				id += " " + r.CustomID
			}
			return []string{id, r.Status, r.Customer, r.Created, r.Updated, r.Carrier}
		})...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// create --file payload.json: validate then POST a load.
func createLoadCmd(e *env) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Validate a load payload and create it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			if err := load.Validate(payload); err != nil {
				return err
			}
			st := store.New(e.client, store.WithLogger(e.logger))
			resp, err := st.CreateLoad(cmd.Context(), payload)
			if err != nil {
				return e.report(cmd.ErrOrStderr(), "Failed to create load:", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(resp))
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "payload JSON file, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readPayload(stdin io.Reader, file string) (load.Load, error) {
	var raw []byte
	var err error
	if file == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(file)
	}
	if err != nil {
		return load.Load{}, fmt.Errorf("read payload: %w", err)
	}
	var payload load.Load
	if err := json.Unmarshal(raw, &payload); err != nil {
		return load.Load{}, fmt.Errorf("decode payload: %w", err)
	}
	for _, stop := range []*load.Stop{&payload.Pickup, &payload.Consignee} {
		if stop.Country == "" {
			stop.Country = load.DefaultCountry
		}
	}
	return payload, nil
}
