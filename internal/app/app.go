// Package app wires configuration, storage, and services into a runnable
// broker.
package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/api"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/config"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/db/crypto"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/db/repository"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/service/broker"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/service/escrow"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/service/security"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/service/store"
)

// Deps are the externally constructed dependencies the app builds on.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services holds the fully wired service graph.
type Services struct {
	Catalog   *broker.CatalogService
	Instances *broker.InstanceService
	Bindings  *broker.BindingService
	Users     *security.UserService
	Books     *store.BookStoreService
	KeyValue  *store.KeyValueStore
	Handler   *api.Handler
}

// New wires the service graph for the configured service type.
func New(deps Deps) (*Services, error) {
	cfg := deps.Cfg

	catalog, err := broker.LoadCatalog(cfg.CatalogPath, cfg.ServiceType)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	catalogSvc := broker.NewCatalogService(catalog)

	instanceRepo := repository.NewInstanceRepo(deps.WriteDB)
	bindingRepo := repository.NewBindingRepo(deps.WriteDB)
	userRepo := repository.NewUserRepo(deps.WriteDB)

	userSvc := security.NewUserService(userRepo, security.NewBcryptEncoder(0))
	authorizer := security.NewStoreAuthorizer()

	var (
		resources domain.ResourceStore
		books     *store.BookStoreService
		keyvalue  *store.KeyValueStore
	)
	switch cfg.ServiceType {
	case config.ServiceTypeKeyValue:
		keyvalue = store.NewKeyValueStore()
		resources = keyvalue
	default:
		books = store.NewBookStoreService(repository.NewBookStoreRepo(deps.WriteDB))
		resources = books
	}

	var workflow domain.CredentialWorkflow = escrow.NoopWorkflow{}
	if cfg.EscrowEnabled() {
		encryptor, err := crypto.NewEncryptor(cfg.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("init encryptor: %w", err)
		}
		secrets := escrow.NewEncryptedSecretStore(repository.NewEscrowRepo(deps.WriteDB), encryptor)
		workflow = escrow.NewWorkflow(secrets, cfg.BrokerName, deps.Logger)
	}

	instanceSvc := broker.NewInstanceService(instanceRepo, resources, deps.Logger)
	bindingSvc := broker.NewBindingService(
		bindingRepo, userSvc, workflow,
		cfg.BaseURL, catalogSvc.ResourcePath(cfg.ServiceType),
		deps.Logger,
	)

	handler := api.NewHandler(catalogSvc, instanceSvc, bindingSvc, books, keyvalue, authorizer, deps.Logger)

	return &Services{
		Catalog:   catalogSvc,
		Instances: instanceSvc,
		Bindings:  bindingSvc,
		Users:     userSvc,
		Books:     books,
		KeyValue:  keyvalue,
		Handler:   handler,
	}, nil
}
