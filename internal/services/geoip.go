package services

import (
	"log/slog"
	"net"
	"sync"

	"github.com/oschwald/geoip2-golang"
)

// GeoResolver resolves client IPs to a country and city using a local
// MaxMind database. When no database is configured, lookups degrade to
// "Unknown" instead of failing.
type GeoResolver struct {
	logger    *slog.Logger
	geoReader *geoip2.Reader
	geoLock   sync.RWMutex
}

func NewGeoResolver(dbPath string, logger *slog.Logger) *GeoResolver {
	r := &GeoResolver{logger: logger}

	if dbPath == "" {
		logger.Warn("GeoIP: no database configured, lookups will be disabled")
		return r
	}

	reader, err := geoip2.Open(dbPath)
	if err != nil {
		logger.Error("GeoIP: failed to open database", "path", dbPath, "error", err)
		return r
	}
	r.geoReader = reader

	meta := reader.Metadata()
	logger.Info("GeoIP: loaded database", "epoch", meta.BuildEpoch)
	return r
}

func (s *GeoResolver) Close() {
	s.geoLock.Lock()
	defer s.geoLock.Unlock()

	if s.geoReader != nil {
		s.geoReader.Close()
		s.geoReader = nil
	}
}

func (s *GeoResolver) GetLocation(ipStr string) (country, city string) {
	if ipStr == "127.0.0.1" || ipStr == "::1" {
		return "Localhost", "Local"
	}

	s.geoLock.RLock()
	reader := s.geoReader
	s.geoLock.RUnlock()

	if reader == nil {
		return "Unknown", ""
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return "Unknown", ""
	}

	record, err := reader.City(ip)
	if err != nil {
		s.logger.Error("GeoIP: lookup error", "ip", ipStr, "error", err)
		return "Unknown", ""
	}

	if name, ok := record.Country.Names["en"]; ok {
		country = name
	} else {
		country = record.Country.IsoCode
	}
	if country == "" {
		country = "Unknown"
	}

	if name, ok := record.City.Names["en"]; ok {
		city = name
	}

	return country, city
}
