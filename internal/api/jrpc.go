// Copyright 2025 The Synergy Network Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api

import (
	"encoding/json"
	"io"
	stdlog "log"
	"mime"
	"net/http"
	"os"

	"github.com/AccumulateNetwork/jsonrpc2/v15"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gitlab.com/synergy-network/snrg/internal/logging"
	"gitlab.com/synergy-network/snrg/pkg/errors"
)

const (
	ErrCodeInternal jsonrpc2.ErrorCode = -32800 - iota
	ErrCodeValidation
	ErrCodeNotFound
)

// ErrCodeSynergyBase is the base for status-coded errors: the JSON-RPC error
// code is ErrCodeSynergyBase minus the status code.
const ErrCodeSynergyBase jsonrpc2.ErrorCode = -33000

type JrpcMethods struct {
	Options
	methods  jsonrpc2.MethodMap
	validate *validator.Validate
	logger   logging.OptionalLogger
}

func NewJrpc(opts Options) (*JrpcMethods, error) {
	m := new(JrpcMethods)
	m.Options = opts
	m.validate = validator.New()
	m.logger.Set(opts.Logger, "module", "api")

	m.methods = jsonrpc2.MethodMap{
		// Metadata
		"status":  m.Status,
		"version": m.Version,

		// Queries
		"query-balance":   m.QueryBalance,
		"query-supply":    m.QuerySupply,
		"query-plan":      m.QueryPlan,
		"query-positions": m.QueryPositions,
		"query-tiers":     m.QueryTiers,

		// Ledger
		"transfer": m.Transfer,

		// Rescue
		"register-plan":   m.RegisterPlan,
		"initiate-rescue": m.InitiateRescue,
		"cancel-rescue":   m.CancelRescue,
		"execute-rescue":  m.ExecuteRescue,

		// Staking
		"fund-reserve":   m.FundReserve,
		"stake":          m.Stake,
		"withdraw":       m.Withdraw,
		"withdraw-early": m.WithdrawEarly,
	}
	return m, nil
}

func (m *JrpcMethods) NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/status", m.jrpc2http(m.Status))
	mux.Handle("/version", m.jrpc2http(m.Version))
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/v1", jsonrpc2.HTTPRequestHandler(m.methods, stdlog.New(os.Stdout, "", 0)))
	return mux
}

func (m *JrpcMethods) jrpc2http(jrpc jsonrpc2.MethodFunc) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			res.WriteHeader(http.StatusBadRequest)
			return
		}

		var params json.RawMessage
		mediatype, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
		if mediatype == "application/json" || mediatype == "text/json" {
			params = body
		}

		r := jrpc(req.Context(), params)
		res.Header().Add("Content-Type", "application/json")
		data, err := json.Marshal(r)
		if err != nil {
			m.logger.Error("Failed to marshal response", "error", err)
			res.WriteHeader(http.StatusInternalServerError)
			return
		}

		_, _ = res.Write(data)
	}
}

func (m *JrpcMethods) parse(params json.RawMessage, target interface{}) error {
	err := json.Unmarshal(params, target)
	if err != nil {
		return validatorError(err)
	}

	err = m.validate.Struct(target)
	if err != nil {
		return validatorError(err)
	}

	return nil
}

func validatorError(err error) jsonrpc2.Error {
	return jsonrpc2.NewError(ErrCodeValidation, "Validation Error", err.Error())
}

func internalError(err error) jsonrpc2.Error {
	return jsonrpc2.NewError(ErrCodeInternal, "Internal Error", err.Error())
}

// synergyError converts a status-coded error into a JSON-RPC error.
func synergyError(err error) jsonrpc2.Error {
	code := errors.Code(err)
	switch {
	case code == errors.NotFound:
		return jsonrpc2.NewError(ErrCodeNotFound, "Synergy Error", err.Error())
	case code.IsKnownError():
		return jsonrpc2.NewError(ErrCodeSynergyBase-jsonrpc2.ErrorCode(code), "Synergy Error", err.Error())
	default:
		return internalError(err)
	}
}
