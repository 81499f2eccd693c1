package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK          = "ok"
	statusActivated   = "activated"
	statusDeactivated = "deactivated"
	statusLimitSet    = "limit_set"
	statusTicked      = "ticked"
	statusSwitched    = "switched"
	statusImpulseSet  = "impulse_set"

	errActivate        = "failed to activate"
	errDeactivate      = "failed to deactivate"
	errGetState        = "failed to load state"
	errTick            = "failed to advance the device"
	errSwitch          = "failed to switch component"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Respond with a status, the applied flag and current state (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	ctx := c.Request.Context()
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	st, err := h.services.Monitoring.GetState(ctx)
	if err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// Request DTO for the tachycardia threshold.
type tachyLimitRequest struct {
	Limit int `json:"limit"`
}

// SetTachyLimitRequest is an exported model for Swagger docs of the payload.
type SetTachyLimitRequest struct {
	// Threshold in BPM, domain [-1, 300]
	Limit int `json:"limit" example:"120"`
}

// Request DTO for staging a generator impulse.
type impulseRequest struct {
	Impulse int `json:"impulse"`
}

// SetImpulseRequest is an exported model for Swagger docs of the payload.
type SetImpulseRequest struct {
	// Impulse magnitude in Joules, domain [0, 45]
	Impulse int `json:"impulse" example:"30"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Activate the controller
// @Description  Composite On: applies only while the monitor pair and generator are already on; resets the controller to defaults.
// @Tags         icd
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, applied, state"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/icd/on [post]
// @Security     BearerAuth
func (h *Handler) icdOn(c *gin.Context) {
	ctx := c.Request.Context()
	applied, err := h.services.Device.Activate(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errActivate, "icd_on_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusActivated, gin.H{"applied": applied})
}

// @Summary      Deactivate the controller
// @Description  Composite Off: applies only while the monitor pair and generator are NOT both on.
// @Tags         icd
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/icd/off [post]
// @Security     BearerAuth
func (h *Handler) icdOff(c *gin.Context) {
	ctx := c.Request.Context()
	applied, err := h.services.Device.Deactivate(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errDeactivate, "icd_off_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusDeactivated, gin.H{"applied": applied})
}

// @Summary      Set tachycardia threshold
// @Description  Ignored (applied=false) while the controller is off; values outside [-1, 300] are rejected.
// @Tags         icd
// @Accept       json
// @Produce      json
// @Param        body  body   SetTachyLimitRequest  true  "Threshold payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/icd/tachy-limit [post]
// @Security     BearerAuth
func (h *Handler) setTachyLimit(c *gin.Context) {
	var req tachyLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	applied, err := h.services.Device.SetTachyLimit(ctx, req.Limit)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("icd_set_tachy_limit_failed", "err", err, "limit", req.Limit)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondWithStatusAndState(c, statusLimitSet, gin.H{"applied": applied, "limit": req.Limit})
}

// @Summary      Advance one tick
// @Description  Runs one discrete step: generator, heart, monitor, controller. The background simulator does this continuously; the endpoint exists for manual stepping.
// @Tags         icd
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, report, state"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/icd/tick [post]
// @Security     BearerAuth
func (h *Handler) tick(c *gin.Context) {
	ctx := c.Request.Context()
	rep, err := h.services.Device.Tick(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errTick, "icd_tick_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusTicked, gin.H{"report": rep})
}

// @Summary      Get device state
// @Tags         icd
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/icd/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "icd_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Switch generator on
// @Tags         generator
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/generator/on [post]
// @Security     BearerAuth
func (h *Handler) generatorOn(c *gin.Context) {
	if err := h.services.Device.GeneratorOn(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSwitch, "generator_on_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusSwitched, gin.H{"component": "generator", "on": true})
}

// @Summary      Switch generator off
// @Tags         generator
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/generator/off [post]
// @Security     BearerAuth
func (h *Handler) generatorOff(c *gin.Context) {
	if err := h.services.Device.GeneratorOff(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSwitch, "generator_off_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusSwitched, gin.H{"component": "generator", "on": false})
}

// @Summary      Stage a generator impulse
// @Description  Silently ignored (applied=false) while the generator is off; values outside [0, 45] are rejected.
// @Tags         generator
// @Accept       json
// @Produce      json
// @Param        body  body   SetImpulseRequest  true  "Impulse payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/generator/impulse [post]
// @Security     BearerAuth
func (h *Handler) generatorSetImpulse(c *gin.Context) {
	var req impulseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	applied, err := h.services.Device.GeneratorSetImpulse(ctx, req.Impulse)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("generator_set_impulse_failed", "err", err, "impulse", req.Impulse)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondWithStatusAndState(c, statusImpulseSet, gin.H{"applied": applied, "impulse": req.Impulse})
}

// @Summary      Generator status
// @Tags         generator
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/generator/status [get]
// @Security     BearerAuth
func (h *Handler) generatorStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Device.GeneratorStatus())
}

// @Summary      Switch monitor pair on
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/monitor/on [post]
// @Security     BearerAuth
func (h *Handler) monitorOn(c *gin.Context) {
	if err := h.services.Device.MonitorOn(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSwitch, "monitor_on_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusSwitched, gin.H{"component": "monitor", "on": true})
}

// @Summary      Switch monitor pair off
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/monitor/off [post]
// @Security     BearerAuth
func (h *Handler) monitorOff(c *gin.Context) {
	if err := h.services.Device.MonitorOff(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSwitch, "monitor_off_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusSwitched, gin.H{"component": "monitor", "on": false})
}

// @Summary      Monitor status (primary)
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/monitor/status [get]
// @Security     BearerAuth
func (h *Handler) monitorStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Device.MonitorStatus())
}
