package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	reqdto "cylinder-sync/internal/handler/dto/request"
	"cylinder-sync/internal/pkg/errs"

	"github.com/gin-gonic/gin/binding"
	"gopkg.in/yaml.v3"
)

// loadBatchFile reads a reconcile request from a .json, .yaml or .yml file
// and validates it with the same rules as the HTTP endpoint.
func loadBatchFile(path string) (reqdto.ReconcileRequest, error) {
	var req reqdto.ReconcileRequest

	raw, err := os.ReadFile(path)
	if err != nil {
		return req, errs.Wrap(err, "read batch file")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return req, errs.Wrap(err, "decode json batch")
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&req); err != nil {
			return req, errs.Wrap(err, "decode yaml batch")
		}
	default:
		return req, errs.Newf("unsupported batch file extension %q", filepath.Ext(path))
	}

	if err := binding.Validator.ValidateStruct(&req); err != nil {
		return req, errs.Wrap(err, "invalid batch")
	}
	return req, nil
}
