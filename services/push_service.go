package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/VIJAYRUR/fitfoodie-backend/models"
	"github.com/VIJAYRUR/fitfoodie-backend/store"
)

// PushService delivers mobile push notifications through SNS platform
// endpoints. Devices register once per (user, token) pair; the raw token
// is hashed before it touches the store.
type PushService struct {
	devices        store.DeviceStore
	sns            *awssns.Client
	fcmPlatformArn string
	log            *zap.Logger
}

func NewPushService(ctx context.Context, devices store.DeviceStore, region, fcmPlatformArn string) (*PushService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &PushService{
		devices:        devices,
		sns:            awssns.NewFromConfig(cfg),
		fcmPlatformArn: fcmPlatformArn,
		log:            zap.L().Named("push"),
	}, nil
}

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

func (p *PushService) platformArn(platform string) (string, error) {
	switch strings.ToLower(platform) {
	case "android", "ios":
		if p.fcmPlatformArn == "" {
			return "", errors.New("SNS_FCM_ARN not set")
		}
		return p.fcmPlatformArn, nil
	default:
		return "", errors.New("unknown platform")
	}
}

// RegisterDevice creates (or refreshes) the SNS endpoint for a device
// token and upserts the device record.
func (p *PushService) RegisterDevice(ctx context.Context, userID models.UserID, platform, token string) (*models.UserDevice, error) {
	appArn, err := p.platformArn(platform)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrInvalidInput)
	}
	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(appArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, err
	}

	dev := &models.UserDevice{
		UserID:      userID.ObjectID(),
		Platform:    strings.ToLower(platform),
		TokenHash:   tokenHash(token),
		EndpointARN: aws.ToString(out.EndpointArn),
		Enabled:     true,
	}
	if err := p.devices.Upsert(ctx, dev); err != nil {
		return nil, storeErr(err)
	}
	return dev, nil
}

// PushToUser publishes to every enabled endpoint the user has registered.
// Delivery is best-effort; failures are logged and swallowed.
func (p *PushService) PushToUser(ctx context.Context, userID primitive.ObjectID, title, body string, data map[string]string) {
	devices, err := p.devices.ByUser(ctx, userID)
	if err != nil || len(devices) == 0 {
		return
	}

	msg := map[string]any{
		"default": body,
		"GCM": map[string]any{
			"notification": map[string]string{
				"title": title,
				"body":  body,
			},
			"data": data,
		},
	}
	raw, _ := json.Marshal(msg)
	for _, d := range devices {
		_, err := p.sns.Publish(ctx, &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(d.EndpointARN),
		})
		if err != nil {
			p.log.Warn("push publish failed",
				zap.String("user_id", userID.Hex()),
				zap.Error(err))
		}
	}
}
