package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const settingsCookie = "radar_settings"

// MonitoringSettings are browser-local preferences. They live in a cookie
// and are never written to the store.
type MonitoringSettings struct {
	AutoMonitoring   bool `json:"autoMonitoring" form:"autoMonitoring"`
	EmailAlerts      bool `json:"emailAlerts" form:"emailAlerts"`
	HighPriorityOnly bool `json:"highPriorityOnly" form:"highPriorityOnly"`
	AIAnalysis       bool `json:"aiAnalysis" form:"aiAnalysis"`
	RealTimeUpdates  bool `json:"realTimeUpdates" form:"realTimeUpdates"`
}

func DefaultSettings() MonitoringSettings {
	return MonitoringSettings{
		AutoMonitoring:   true,
		EmailAlerts:      true,
		HighPriorityOnly: false,
		AIAnalysis:       true,
		RealTimeUpdates:  true,
	}
}

type SettingsData struct {
	pageBase
	Settings MonitoringSettings
}

func readSettings(c *gin.Context) MonitoringSettings {
	settings := DefaultSettings()
	raw, err := c.Cookie(settingsCookie)
	if err != nil || raw == "" {
		return settings
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return settings
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return DefaultSettings()
	}
	return settings
}

func (a *App) SettingsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "settings.html", SettingsData{
		pageBase: a.base(c, "Configurações", "settings"),
		Settings: readSettings(c),
	})
}

// SaveSettings stores the submitted toggles in the settings cookie. An
// unchecked checkbox is simply absent from the form.
func (a *App) SaveSettings(c *gin.Context) {
	var settings MonitoringSettings
	if err := c.ShouldBind(&settings); err != nil {
		a.notifyError(c, "Erro ao salvar configurações")
		c.Redirect(http.StatusSeeOther, "/dashboard/settings")
		return
	}

	data, _ := json.Marshal(settings)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(settingsCookie, base64.RawURLEncoding.EncodeToString(data), 365*24*3600, "/", "", a.Config.Auth.SecureCookie, true)
	a.notifySuccess(c, "Configurações salvas com sucesso")
	c.Redirect(http.StatusSeeOther, "/dashboard/settings")
}
