// Package careplan exposes the configured care plan providers and the
// activity workflow built on top of them.
package careplan

import (
	"careplan-service/internal/app/contracts"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/exceptions"
	"careplan-service/internal/pkg/utils"
	"context"
	"sort"

	"go.uber.org/zap"
)

// Registry maps provider names to their adapters. It is built once at startup
// and only read afterwards.
type Registry struct {
	services map[string]contracts.CareplanService
	log      *zap.Logger
}

func NewRegistry(logger *zap.Logger, services ...contracts.CareplanService) *Registry {
	registry := &Registry{
		services: make(map[string]contracts.CareplanService, len(services)),
		log:      logger,
	}
	for _, service := range services {
		registry.services[service.ProviderName()] = service
	}
	return registry
}

func (r *Registry) Get(provider string) (contracts.CareplanService, error) {
	service, ok := r.services[provider]
	if !ok {
		return nil, exceptions.ErrCareplanUnknownProvider(provider)
	}
	return service, nil
}

// Providers returns the registered provider names in sorted order.
func (r *Registry) Providers() []string {
	names := make([]string, 0, len(r.services))
	for name := range r.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InitAll initialises every provider and reports which ones connected.
// A provider that fails to connect stays registered; its first call retries the login.
func (r *Registry) InitAll(ctx context.Context) map[string]bool {
	requestID := utils.GetRequestID(ctx)
	results := make(map[string]bool, len(r.services))
	for _, name := range r.Providers() {
		ok := r.services[name].Init(ctx)
		results[name] = ok
		if !ok {
			r.log.Warn("Registry.InitAll provider not connected",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingProviderKey, name),
			)
			continue
		}
		r.log.Info("Registry.InitAll provider connected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderKey, name),
		)
	}
	return results
}
