package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/eshaffer321/runbook-go/pkg/runbook"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newQueryCmd(a *app) *cobra.Command {
	var vars []string
	var varsJSON string

	cmd := &cobra.Command{
		Use:   "query NAME",
		Short: "Run a predefined GraphQL query",
		Long: "Run one of the predefined GraphQL queries. Variables are passed as\n" +
			"--var name=value (values are parsed as JSON when possible) or as a\n" +
			"JSON object with --vars.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variables, err := parseVariables(varsJSON, vars)
			if err != nil {
				return err
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			var result interface{}
			if err := client.Query(cmd.Context(), args[0], variables, &result); err != nil {
				return describe(err)
			}
			return a.print(result)
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "query variable as name=value (repeatable)")
	cmd.Flags().StringVar(&varsJSON, "vars", "", "query variables as a JSON object")
	return cmd
}

func newQueriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "queries [NAME]",
		Short: "List the predefined queries or print one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, name := range runbook.QueryNames() {
					fmt.Fprintln(a.out, name)
				}
				return nil
			}

			doc, ok := runbook.QueryDocument(args[0])
			if !ok {
				return errors.Wrapf(runbook.ErrQueryNotFound, "query %q", args[0])
			}
			fmt.Fprintln(a.out, strings.TrimSpace(doc))
			return nil
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	var params []string
	var raw bool

	cmd := &cobra.Command{
		Use:   "get PATH",
		Short: "GET a REST API resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseParams(params)
			if err != nil {
				return err
			}
			return a.rest(cmd, &runbook.Request{
				Path:   args[0],
				Method: http.MethodGet,
				Query:  query,
			}, raw)
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "query parameter as name=value (repeatable)")
	cmd.Flags().BoolVar(&raw, "raw", false, "call the path without the .json suffix and key conversion")
	return cmd
}

func newSendCmd(a *app) *cobra.Command {
	var params []string
	var method, data string
	var raw bool

	cmd := &cobra.Command{
		Use:   "post PATH",
		Short: "Send a JSON body to a REST API resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseParams(params)
			if err != nil {
				return err
			}

			req := &runbook.Request{
				Path:   args[0],
				Method: strings.ToUpper(method),
				Query:  query,
			}
			if data != "" {
				var body interface{}
				if err := json.Unmarshal([]byte(data), &body); err != nil {
					return errors.Wrap(err, "--data must be valid JSON")
				}
				req.Body = runbook.JSONBody(body)
			}
			return a.rest(cmd, req, raw)
		},
	}

	cmd.Flags().StringVarP(&method, "method", "X", http.MethodPost, "HTTP method: POST, PUT, PATCH or DELETE")
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "query parameter as name=value (repeatable)")
	cmd.Flags().BoolVar(&raw, "raw", false, "call the path without the .json suffix and key conversion")
	return cmd
}

func newDownloadCmd(a *app) *cobra.Command {
	var params []string
	var output string

	cmd := &cobra.Command{
		Use:   "download PATH",
		Short: "Download a file through the API proxy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseParams(params)
			if err != nil {
				return err
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			data, err := client.Download(cmd.Context(), args[0], query...)
			if err != nil {
				return describe(err)
			}

			if output == "" || output == "-" {
				_, err = a.out.Write(data)
				return err
			}
			return errors.Wrap(os.WriteFile(output, data, 0o644), "failed to write output")
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "query parameter as name=value (repeatable)")
	return cmd
}

func newUploadCmd(a *app) *cobra.Command {
	var file, field string
	var form []string

	cmd := &cobra.Command{
		Use:   "upload PATH",
		Short: "Upload a file as multipart form data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file is required")
			}
			fields, err := parseFields(form)
			if err != nil {
				return err
			}

			f, err := os.Open(file)
			if err != nil {
				return errors.Wrap(err, "failed to open file")
			}
			defer f.Close()

			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			var result interface{}
			err = client.Upload(cmd.Context(), args[0], runbook.FormFile{
				Field:    field,
				Filename: filepath.Base(file),
				Content:  f,
			}, fields, &result)
			if err != nil {
				return describe(err)
			}
			return a.print(result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "file to upload")
	cmd.Flags().StringVar(&field, "field", "file", "form field name for the file")
	cmd.Flags().StringArrayVarP(&form, "form", "F", nil, "extra form field as name=value (repeatable)")
	return cmd
}

func (a *app) rest(cmd *cobra.Command, req *runbook.Request, raw bool) error {
	client, err := a.client()
	if err != nil {
		return err
	}
	defer client.Close()

	var result interface{}
	if raw {
		err = client.RawRequest(cmd.Context(), req, &result)
	} else {
		err = client.Request(cmd.Context(), req, &result)
	}
	if err != nil {
		return describe(err)
	}
	return a.print(result)
}

// splitPair splits name=value
func splitPair(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", "", errors.Errorf("expected name=value, got %q", s)
	}
	return name, value, nil
}

// parseValue decodes s as JSON, falling back to the plain string
func parseValue(s string) interface{} {
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

func parseVariables(raw string, pairs []string) (map[string]interface{}, error) {
	variables := map[string]interface{}{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &variables); err != nil {
			return nil, errors.Wrap(err, "--vars must be a JSON object")
		}
	}
	for _, p := range pairs {
		name, value, err := splitPair(p)
		if err != nil {
			return nil, err
		}
		variables[name] = parseValue(value)
	}
	return variables, nil
}

func parseParams(pairs []string) ([]runbook.Param, error) {
	params := make([]runbook.Param, 0, len(pairs))
	for _, p := range pairs {
		name, value, err := splitPair(p)
		if err != nil {
			return nil, err
		}
		params = append(params, runbook.Param{Name: name, Value: value})
	}
	return params, nil
}

func parseFields(pairs []string) (map[string]string, error) {
	fields := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, err := splitPair(p)
		if err != nil {
			return nil, err
		}
		fields[name] = value
	}
	return fields, nil
}
