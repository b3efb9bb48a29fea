package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	c "pi.service/api"
	sm "pi.service/models"
)

const (
	DefaultAddr = ":8080"

	// two upstream attempts plus headroom
	writeTimeout = 90 * time.Second
	maxBodyBytes = 1 << 20
)

const (
	msgTickerRequired    = "Parâmetro 'ticker' é obrigatório."
	msgTickerNotFound    = "Ticker não encontrado ou inválido."
	msgUpstreamDown      = "Serviço da BrAPI indisponível."
	msgInternal          = "Erro interno do servidor."
	msgInvalidBody       = "Corpo da requisição inválido."
	msgInvalidWeights    = "A soma dos pesos deve ser 100%."
	msgAssetNotFoundFmt  = "Ticker %s não encontrado."
	msgInvalidRequestFmt = "Requisição inválida: %v"
)

func GetHttpServer(sc *ServiceContext, addr string, allowedOrigins []string) *http.Server {
	if addr == "" {
		addr = DefaultAddr
	}

	server := &http.Server{
		Addr:           addr,
		Handler:        GetRouter(sc, allowedOrigins),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   writeTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	return server
}

func GetRouter(sc *ServiceContext, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         int((12 * time.Hour).Seconds()),
	}))
	r.Use(middleware.SetHeader("Content-Type", "application/json"))
	r.Use(middleware.AllowContentType("application/json"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) { ping(w, r, sc) })
		r.Get("/quote", func(w http.ResponseWriter, r *http.Request) { getQuote(w, r, sc) })
		r.Get("/dividends", func(w http.ResponseWriter, r *http.Request) { getDividends(w, r, sc) })
		r.Post("/renda-passiva", func(w http.ResponseWriter, r *http.Request) { postPassiveIncome(w, r, sc) })
		r.Post("/carteira-renda-passiva", func(w http.ResponseWriter, r *http.Request) { postPortfolio(w, r, sc) })
		r.Get("/cache-stats", func(w http.ResponseWriter, r *http.Request) { getCacheStats(w, r, sc) })
	})

	return r
}

func ping(w http.ResponseWriter, r *http.Request, sc *ServiceContext) {
	writeOk(w, &map[string]string{"message": "pong"})
}

func getQuote(w http.ResponseWriter, r *http.Request, sc *ServiceContext) {
	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, msgTickerRequired)
		return
	}

	quote, err := sc.FetchQuote(r.Context(), ticker)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if quote == nil {
		writeError(w, http.StatusNotFound, msgTickerNotFound)
		return
	}

	history := HistoryWithin(quote, TrailingMonths)
	res := sm.MapQuoteToResponse(quote, history.Total)
	writeOk(w, &res)
}

func getDividends(w http.ResponseWriter, r *http.Request, sc *ServiceContext) {
	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		writeError(w, http.StatusBadRequest, msgTickerRequired)
		return
	}

	// anything missing, unparseable or not positive means the trailing year
	months, err := strconv.Atoi(r.URL.Query().Get("periodoMeses"))
	if err != nil || months <= 0 {
		months = TrailingMonths
	}

	quote, err := sc.FetchQuote(r.Context(), ticker)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if quote == nil {
		writeError(w, http.StatusNotFound, msgTickerNotFound)
		return
	}

	history := HistoryWithin(quote, months)
	res := sm.MapDividendsToResponse(quote.Symbol, months, history.Total, history.Items)
	writeOk(w, &res)
}

func postPassiveIncome(w http.ResponseWriter, r *http.Request, sc *ServiceContext) {
	var req sm.PassiveIncomeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	projection, err := sc.SimulateAsset(r.Context(), req.Ticker, req.MonthlyContribution, req.Years)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	res := MapProjectionToResponse(projection)
	writeOk(w, &res)
}

func postPortfolio(w http.ResponseWriter, r *http.Request, sc *ServiceContext) {
	var req sm.PortfolioRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	portfolio, err := sc.SimulatePortfolio(r.Context(), MapPortfolioRequest(req))
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	res := MapPortfolioToResponse(portfolio)
	writeOk(w, &res)
}

func getCacheStats(w http.ResponseWriter, r *http.Request, sc *ServiceContext) {
	stats := sc.Cache.Stats()
	writeOk(w, &stats)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("error decoding request body: %w", err)
	}
	return nil
}

// StatusForError maps a core error to the response status and the message shown to the client
func StatusForError(err error) (int, string) {
	var ae *AssetError

	switch {
	case errors.Is(err, ErrPortfolioInvalidWeights):
		return http.StatusBadRequest, msgInvalidWeights
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, fmt.Sprintf(msgInvalidRequestFmt, err)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrAssetNotFound):
		if errors.As(err, &ae) {
			return http.StatusNotFound, fmt.Sprintf(msgAssetNotFoundFmt, ae.Ticker)
		}
		return http.StatusNotFound, msgTickerNotFound
	case errors.Is(err, ErrUpstreamUnavailable):
		code := c.StatusCode(err)
		switch {
		case code == http.StatusNotFound || code == http.StatusBadRequest:
			return http.StatusNotFound, msgTickerNotFound
		case code == 0 || code == http.StatusBadGateway || code >= http.StatusServiceUnavailable:
			// no status at all means the request never got an answer
			return http.StatusBadGateway, msgUpstreamDown
		}
	}

	return http.StatusInternalServerError, msgInternal
}

func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := StatusForError(err)
	log.Printf("[%s] %s %s failed with %d: %v", middleware.GetReqID(r.Context()), r.Method, r.URL.Path, status, err)
	writeError(w, status, msg)
}

func writeOk[T any](w http.ResponseWriter, data *T) {
	writeJSON(w, http.StatusOK, sm.GetServiceResponseOk(data))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, sm.GetServiceResponseError(msg))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("error encoding response: %v", err)
	}
}
