package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goldvault/goldvault/internal/device"
	deviceserial "github.com/goldvault/goldvault/internal/device/serial"
	"github.com/goldvault/goldvault/internal/dto"
	"github.com/goldvault/goldvault/internal/middleware"
)

// DeviceReaders bundles the serial peripherals available to the HTTP layer.
// Either reader may be nil when no port is configured for it.
type DeviceReaders struct {
	Scale *device.Reader
	RFID  *device.Reader
}

// deviceHandler exposes connect/scan lifecycle control over a serial reader.
type deviceHandler struct {
	reader *device.Reader
	status func(*device.Reader) any
}

func newDeviceHandler(r *device.Reader, status func(*device.Reader) any) *deviceHandler {
	return &deviceHandler{
		reader: r,
		status: status,
	}
}

// registerDeviceRoutes registers scale and RFID reader routes.
func registerDeviceRoutes(rg *gin.RouterGroup, readers DeviceReaders) {
	rg.GET("/devices/ports", listSerialPorts)

	scale := newDeviceHandler(readers.Scale, func(r *device.Reader) any {
		return dto.ToScaleStatusResponse(r)
	})
	sg := rg.Group("/devices/scale")
	{
		sg.POST("/connect", scale.connect)
		sg.POST("/disconnect", scale.disconnect)
		sg.POST("/scan/start", scale.startScan)
		sg.POST("/scan/stop", scale.stopScan)
		sg.GET("/status", scale.getStatus)
	}

	rfid := newDeviceHandler(readers.RFID, func(r *device.Reader) any {
		return dto.ToRFIDStatusResponse(r)
	})
	rg2 := rg.Group("/devices/rfid")
	{
		rg2.POST("/connect", rfid.connect)
		rg2.POST("/disconnect", rfid.disconnect)
		rg2.POST("/scan/start", rfid.startScan)
		rg2.POST("/scan/stop", rfid.stopScan)
		rg2.GET("/status", rfid.getStatus)
		rg2.DELETE("/tags", rfid.clearTags)
	}
}

// listSerialPorts enumerates serial ports on the host so an operator can find
// the right port names for the scale and RFID reader config.
func listSerialPorts(c *gin.Context) {
	ports, err := deviceserial.ListPorts()
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to enumerate serial ports", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enumerate serial ports"})
		return
	}
	if ports == nil {
		ports = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"ports": ports})
}

// notConfigured guards every route against a reader with no configured port.
func (h *deviceHandler) notConfigured(c *gin.Context) bool {
	if h.reader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Device not configured"})
		return true
	}
	return false
}

func (h *deviceHandler) connect(c *gin.Context) {
	if h.notConfigured(c) {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.reader.Connect(c.Request.Context()); err != nil {
		logger.Warn("Device connect failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, h.status(h.reader))
		return
	}
	c.JSON(http.StatusOK, h.status(h.reader))
}

func (h *deviceHandler) disconnect(c *gin.Context) {
	if h.notConfigured(c) {
		return
	}
	h.reader.Disconnect()
	c.JSON(http.StatusOK, h.status(h.reader))
}

func (h *deviceHandler) startScan(c *gin.Context) {
	if h.notConfigured(c) {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	// The scan outlives this request; it must not inherit the request context.
	err := h.reader.StartScan(context.Background())
	if err != nil {
		switch {
		case errors.Is(err, device.ErrNotConnected):
			logger.Warn("Scan requested without connection")
			c.JSON(http.StatusConflict, gin.H{"error": "Device is not connected"})
		case errors.Is(err, device.ErrAlreadyScanning):
			c.JSON(http.StatusConflict, gin.H{"error": "Scan already in progress"})
		default:
			logger.Error("Failed to start scan", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start scan"})
		}
		return
	}
	c.JSON(http.StatusOK, h.status(h.reader))
}

func (h *deviceHandler) stopScan(c *gin.Context) {
	if h.notConfigured(c) {
		return
	}

	select {
	case <-h.reader.StopScan():
	case <-c.Request.Context().Done():
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "Timed out waiting for scan to stop"})
		return
	}
	c.JSON(http.StatusOK, h.status(h.reader))
}

func (h *deviceHandler) getStatus(c *gin.Context) {
	if h.notConfigured(c) {
		return
	}
	c.JSON(http.StatusOK, h.status(h.reader))
}

func (h *deviceHandler) clearTags(c *gin.Context) {
	if h.notConfigured(c) {
		return
	}
	h.reader.ClearTags()
	c.JSON(http.StatusOK, h.status(h.reader))
}
