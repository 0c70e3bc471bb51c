package predict

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/go-sod/sleepq/internal/httputil"
	"github.com/go-sod/sleepq/internal/logging"
	"github.com/go-sod/sleepq/internal/predictor"
	"github.com/go-sod/sleepq/internal/record"
)

const maxBodyBytes = 1024 * 1024

type request struct {
	Data []map[string]interface{} `json:"data"`
}

type response struct {
	Data []predictor.Conclusion `json:"data"`
}

// Classifier is the part of the prediction service the handler needs.
type Classifier interface {
	Predict(ctx context.Context, raw map[string]interface{}) (predictor.Conclusion, error)
}

func NewHandler(cfg *Config, classifier Classifier) (http.Handler, error) {
	if classifier == nil {
		return nil, fmt.Errorf("predict handler needs a classifier")
	}
	return &handler{
		cfg:        cfg,
		classifier: classifier,
	}, nil
}

type handler struct {
	classifier Classifier
	cfg        *Config
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	logger := logging.FromContext(ctx)

	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		logger.Debugf(`{"error": "method %v is not allowed"}`, r.Method)
		_, _ = fmt.Fprintf(w, `{"error": "method %v is not allowed"}`, r.Method)
		return
	}

	if t := r.Header.Get("content-type"); len(t) < 16 || t[:16] != "application/json" {
		w.WriteHeader(http.StatusUnsupportedMediaType)
		logger.Debugf(`{"error": "%v"}`, "content-type is not application/json")
		_, _ = fmt.Fprintf(w, `{"error": "%v"}`, "content-type is not application/json")
		return
	}

	defer r.Body.Close()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	d := json.NewDecoder(r.Body)
	d.UseNumber()
	if err := d.Decode(&req); err != nil {
		httputil.DecodeErr(ctx, w, err)
		return
	}

	if len(req.Data) == 0 {
		httputil.RespBadRequest(ctx, w, `{"error": "data must not be empty"}`)
		return
	}
	if len(req.Data) > h.cfg.MaxDataItemsLen {
		httputil.RespBadRequest(ctx, w, `{"error": "data items is too large, max allowed len is %d"}`, h.cfg.MaxDataItemsLen)
		return
	}

	// each goroutine owns one slot, results keep the request order
	resp := response{Data: make([]predictor.Conclusion, len(req.Data))}
	errGrp, grpCtx := errgroup.WithContext(ctx)
	for i, raw := range req.Data {
		i, raw := i, raw
		errGrp.Go(func() error {
			result, err := h.classifier.Predict(grpCtx, raw)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			resp.Data[i] = result
			return nil
		})
	}
	if err := errGrp.Wait(); err != nil {
		if errors.Is(err, record.ErrValidation) {
			httputil.RespBadRequestErr(ctx, w, err)
			return
		}
		httputil.RespInternalError(ctx, w, `{"error": "predict processing error, %v"}`, err)
		return
	}

	bytes, err := json.Marshal(resp)
	if err != nil {
		httputil.RespInternalError(ctx, w, `{"error": "failed to encode output json %v"}`, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "%s", bytes)
}
