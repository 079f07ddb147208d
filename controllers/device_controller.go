package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VIJAYRUR/fitfoodie-backend/middlewares"
	"github.com/VIJAYRUR/fitfoodie-backend/services"
)

type DeviceController struct {
	push *services.PushService // optional
}

func NewDeviceController(push *services.PushService) *DeviceController {
	return &DeviceController{push: push}
}

type RegisterDeviceRequest struct {
	Platform string `json:"platform" binding:"required"`
	Token    string `json:"token" binding:"required"`
}

func (d *DeviceController) Register(c *gin.Context) {
	if d.push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push notifications are not configured"})
		return
	}
	userID, _ := middlewares.CallerID(c)

	var req RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	device, err := d.push.RegisterDevice(c.Request.Context(), userID, req.Platform, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Device registered successfully",
		"platform": device.Platform,
		"enabled":  device.Enabled,
	})
}
