package api

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/voxpupuli/puppet-networkmanager/internal/collector"
	"github.com/voxpupuli/puppet-networkmanager/internal/health"
	"github.com/voxpupuli/puppet-networkmanager/internal/output"
	"github.com/voxpupuli/puppet-networkmanager/internal/resource"
	"go.uber.org/zap"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeYAML = "application/yaml; charset=utf-8"
)

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	registry *collector.Registry
	provider *resource.Provider
	confine  *collector.Confine
	monitor  *health.Monitor
	version  string
	logger   *zap.Logger
}

// Health reports that the agent is up, together with the outcome of the
// last resolution of each fact.
func (h *Handler) Health(c *gin.Context) {
	body := gin.H{
		"status":  "ok",
		"version": h.version,
		"facts":   h.registry.Names(),
	}
	if h.monitor != nil {
		summary := h.monitor.Summary()
		body["facts_status"] = summary["status"]
		body["components"] = summary["components"]
	}
	c.JSON(http.StatusOK, body)
}

// Facts returns every available fact.
func (h *Handler) Facts(c *gin.Context) {
	doc, err := h.registry.Collect(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "COLLECT_FAILED", err)
		return
	}
	h.raw(c, doc.JSON())
}

// FactQuery returns the value selected by a dotted query such as
// nm_all_connections.Home WiFi.uuid.
func (h *Handler) FactQuery(c *gin.Context) {
	query := strings.TrimPrefix(c.Param("query"), "/")
	if query == "" {
		h.Facts(c)
		return
	}

	name := collector.FactName(query)
	if err := h.registry.Available(c.Request.Context(), name); err != nil {
		switch {
		case errors.Is(err, collector.ErrUnknownFact):
			h.fail(c, http.StatusNotFound, "UNKNOWN_FACT", err)
		default:
			h.fail(c, http.StatusServiceUnavailable, "FACT_CONFINED", err)
		}
		return
	}

	results, err := h.registry.Query(c.Request.Context(), query)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "COLLECT_FAILED", err)
		return
	}

	res := results[query]
	if !res.Exists() {
		c.JSON(http.StatusNotFound, ErrorResponse{Code: "NO_VALUE", Message: "query selected nothing: " + query})
		return
	}
	h.raw(c, []byte(res.Raw))
}

// DescribeType returns the networkmanager_connection declaration.
func (h *Handler) DescribeType(c *gin.Context) {
	c.JSON(http.StatusOK, h.provider.Type())
}

// Connections returns every readable connection resource.
func (h *Handler) Connections(c *gin.Context) {
	if !h.providerAvailable(c) {
		return
	}
	c.JSON(http.StatusOK, h.provider.Get(c.Request.Context()))
}

// Connection returns one connection resource by name.
func (h *Handler) Connection(c *gin.Context) {
	if !h.providerAvailable(c) {
		return
	}

	outcome := h.provider.Fetch(c.Request.Context(), c.Param("name"))
	if !outcome.OK() {
		h.fail(c, http.StatusNotFound, "CONNECTION_UNREADABLE", outcome.Err)
		return
	}
	c.JSON(http.StatusOK, outcome.Detail)
}

func (h *Handler) providerAvailable(c *gin.Context) bool {
	if err := h.confine.Check(c.Request.Context(), h.provider.Requires()); err != nil {
		h.fail(c, http.StatusServiceUnavailable, "PROVIDER_CONFINED", err)
		return false
	}
	return true
}

// raw writes an encoded JSON value, converted to YAML when the request
// asks for ?format=yaml.
func (h *Handler) raw(c *gin.Context, body []byte) {
	if strings.EqualFold(c.Query("format"), output.FormatYAML) {
		var buf bytes.Buffer
		if err := output.WriteRaw(&buf, output.FormatYAML, body); err != nil {
			h.fail(c, http.StatusInternalServerError, "ENCODE_FAILED", err)
			return
		}
		c.Data(http.StatusOK, contentTypeYAML, buf.Bytes())
		return
	}
	c.Data(http.StatusOK, contentTypeJSON, body)
}

func (h *Handler) fail(c *gin.Context, status int, code string, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("code", code), zap.Error(err))
	}
	c.JSON(status, ErrorResponse{Code: code, Message: err.Error()})
}
