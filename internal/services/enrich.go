package services

import (
	"github.com/mssola/user_agent"

	"github.com/LUXA-Digital-Solutions/lynkz/internal/models"
)

// enrichClick fills in the derived click attributes: device type and browser
// from the raw user agent, country and city from the client IP. Missing
// inputs fall back to "Unknown" rather than failing.
func enrichClick(click *models.LinkClick, geo *GeoResolver) {
	// 1. Parse User Agent
	if click.UserAgent != "" {
		ua := user_agent.New(click.UserAgent)
		browserName, browserVer := ua.Browser()
		click.Browser = browserName
		if browserVer != "" {
			click.Browser = browserName + " " + browserVer
		}

		if ua.Mobile() {
			click.DeviceType = "Mobile"
		} else if ua.Bot() {
			click.DeviceType = "Bot"
		} else {
			click.DeviceType = "Desktop"
		}
	}
	if click.Browser == "" {
		click.Browser = "Unknown"
	}
	if click.DeviceType == "" {
		click.DeviceType = "Unknown"
	}

	// 2. GeoIP Lookup
	if geo != nil && click.Country == "" {
		country, city := geo.GetLocation(click.IPAddress)
		click.Country = country
		click.City = city
	}
	if click.Country == "" {
		click.Country = "Unknown"
	}
}
