// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"fmt"
	"log"
	nethttp "net/http"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	apihttp "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/in/http/handler"
	"storefront/internal/adapters/in/http/middleware"
	fsrepo "storefront/internal/adapters/out/firestore"
	"storefront/internal/adapters/out/gcs"
	"storefront/internal/adapters/out/mail"
	usecase "storefront/internal/application/usecase"
	orderdom "storefront/internal/domain/order"
	appcfg "storefront/internal/platform/config"
)

// Container owns the external clients and the fully wired HTTP handler.
//
// Firestore and Firebase Auth are strict: startup fails without them.
// GCS, Secret Manager and SendGrid are best-effort: the features they
// back degrade, the rest of the service runs.
type Container struct {
	Config *appcfg.Config

	Firestore     *firestore.Client
	GCS           *storage.Client
	FirebaseApp   *firebase.App
	FirebaseAuth  *fbauth.Client
	SecretManager *secretmanager.Client

	Router nethttp.Handler
}

// NewContainer builds every layer from the outside in.
func NewContainer(ctx context.Context, cfg *appcfg.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("di: config is nil")
	}
	projectID := strings.TrimSpace(cfg.FirestoreProjectID)
	if projectID == "" {
		return nil, errors.New("di: project id is empty (set FIRESTORE_PROJECT_ID or GCP_PROJECT_ID)")
	}

	c := &Container{Config: cfg}

	var clientOpts []option.ClientOption
	if cred := strings.TrimSpace(cfg.FirestoreCredentialsFile); cred != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cred))
		log.Printf("[di] using credentials file for GCP clients")
	} else {
		log.Printf("[di] using Application Default Credentials")
	}

	// Firestore (strict)
	fsClient, err := firestore.NewClient(ctx, projectID, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("di: firestore.NewClient failed (project=%s): %w", projectID, err)
	}
	c.Firestore = fsClient
	log.Printf("[di] Firestore connected project=%s", projectID)

	// Firebase Auth (strict: every protected route depends on it)
	fbProject := strings.TrimSpace(cfg.FirebaseProjectID)
	if fbProject == "" {
		fbProject = projectID
	}
	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: fbProject}, clientOpts...)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("di: firebase app init failed: %w", err)
	}
	c.FirebaseApp = fbApp
	authClient, err := fbApp.Auth(ctx)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("di: firebase auth init failed: %w", err)
	}
	c.FirebaseAuth = authClient
	log.Printf("[di] Firebase Auth initialized project=%s", fbProject)

	// GCS (best-effort: image upload degrades without it)
	var uploader usecase.ImageUploader
	if strings.TrimSpace(cfg.GCSBucket) != "" {
		gcsClient, err := storage.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[di] WARN: storage.NewClient failed: %v (image upload disabled)", err)
		} else {
			c.GCS = gcsClient
			uploader = gcs.NewProductImageRepositoryGCS(gcsClient, cfg.GCSBucket)
			log.Printf("[di] GCS storage client initialized bucket=%s", cfg.GCSBucket)
		}
	} else {
		log.Printf("[di] GCS_BUCKET empty (image upload disabled)")
	}

	// Secret Manager (best-effort: only needed to resolve the SendGrid key)
	if strings.TrimSpace(cfg.SendGridAPIKeySecret) != "" {
		sm, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[di] WARN: secretmanager.NewClient failed: %v", err)
		} else {
			c.SecretManager = sm
		}
	}

	// SendGrid mailer (best-effort)
	var mailer usecase.OrderMailer
	if key := resolveSendGridKey(ctx, cfg, projectID, c.SecretManager); key != "" {
		client := mail.NewSendGridClient(key, "Storefront")
		mailer = mail.NewOrderMailer(client, cfg.MailFrom)
		log.Printf("[di] SendGrid mailer initialized from=%s", cfg.MailFrom)
	} else {
		log.Printf("[di] SendGrid not configured (confirmation mail disabled)")
	}

	// Repositories
	products := fsrepo.NewProductRepositoryFS(fsClient)
	carts := fsrepo.NewCartRepositoryFS(fsClient)
	orders := fsrepo.NewOrderRepositoryFS(fsClient)
	users := fsrepo.NewUserRepositoryFS(fsClient)
	reviews := fsrepo.NewReviewRepositoryFS(fsClient)

	// Usecases
	pricing := orderdom.Pricing{
		ShippingFlatFee: cfg.ShippingFlatFee,
		FreeShippingMin: cfg.FreeShippingMin,
	}
	catalogUC := usecase.NewCatalogUsecase(products, uploader)
	cartUC := usecase.NewCartUsecase(carts, products)
	orderUC := usecase.NewOrderUsecase(orders, pricing, mailer)
	reviewUC := usecase.NewReviewUsecase(reviews, products)
	userUC := usecase.NewUserUsecase(users)

	// HTTP surface
	c.Router = apihttp.NewRouter(apihttp.RouterDeps{
		Auth:           &middleware.Auth{Verifier: authClient, Users: users},
		Products:       handler.NewProductHandler(catalogUC),
		Carts:          handler.NewCartHandler(cartUC),
		Orders:         handler.NewOrderHandler(orderUC),
		Reviews:        handler.NewReviewHandler(reviewUC),
		Users:          handler.NewUserHandler(userUC),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Firestore != nil {
		_ = c.Firestore.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.SecretManager != nil {
		_ = c.SecretManager.Close()
	}
	return nil
}

// resolveSendGridKey prefers the env key; falls back to Secret Manager
// when only the secret name is set.
func resolveSendGridKey(ctx context.Context, cfg *appcfg.Config, projectID string, sm *secretmanager.Client) string {
	if key := strings.TrimSpace(cfg.SendGridAPIKey); key != "" {
		return key
	}
	secretID := strings.TrimSpace(cfg.SendGridAPIKeySecret)
	if secretID == "" || sm == nil {
		return ""
	}

	name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secretID)
	resp, err := sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		log.Printf("[di] WARN: AccessSecretVersion failed (%s): %v", name, err)
		return ""
	}
	if resp == nil || resp.Payload == nil {
		log.Printf("[di] WARN: empty secret payload (%s)", name)
		return ""
	}
	return strings.TrimSpace(string(resp.Payload.Data))
}
