package bridge

import (
	"crm-gateway/models"
	"crm-gateway/utils/logger"
)

// Logical service tokens. Controllers request handles by token, matching
// the deployment's service topology.
const (
	UserService     = "USER_SERVICE"
	RolesService    = "ROLES_SERVICE"
	ProfileService  = "PROFILE_SERVICE"
	CompanyService  = "COMPANY_SERVICE"
	FilesService    = "FILES_SERVICE"
	SettingsService = "SETTINGS_SERVICE"
	NewsService     = "NEWS_SERVICE"
	ClientsService  = "CLIENTS_SERVICE"
)

// Registry owns the long-lived client handles, one per backend service,
// built once at startup and shared by all requests.
type Registry struct {
	clients map[string]*Client
}

// NewRegistry builds a client for every backend service in the config.
// The roles service is hosted by the user service process and therefore
// shares its address.
func NewRegistry(cfg *models.Config, log logger.Logger) *Registry {
	clients := map[string]*Client{
		UserService:     NewClient(UserService, cfg.UserService, cfg.RPCTimeout, log),
		RolesService:    NewClient(RolesService, cfg.UserService, cfg.RPCTimeout, log),
		ProfileService:  NewClient(ProfileService, cfg.ProfileService, cfg.RPCTimeout, log),
		CompanyService:  NewClient(CompanyService, cfg.CompanyService, cfg.RPCTimeout, log),
		FilesService:    NewClient(FilesService, cfg.FilesService, cfg.RPCTimeout, log),
		SettingsService: NewClient(SettingsService, cfg.SettingsService, cfg.RPCTimeout, log),
		NewsService:     NewClient(NewsService, cfg.NewsService, cfg.RPCTimeout, log),
		ClientsService:  NewClient(ClientsService, cfg.ClientsService, cfg.RPCTimeout, log),
	}
	return &Registry{clients: clients}
}

// Service returns the handle for a logical service token. Unknown tokens
// are a programming error and return nil.
func (r *Registry) Service(name string) *Client {
	return r.clients[name]
}

// Names lists the registered service tokens.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	return names
}
