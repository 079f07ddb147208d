package utils

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// TagSuggester proposes meal tags from the food labels Rekognition
// detects in an uploaded image.
type TagSuggester struct {
	client *rekognition.Client
}

func NewTagSuggester(ctx context.Context, region string) (*TagSuggester, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &TagSuggester{client: rekognition.NewFromConfig(cfg)}, nil
}

// SuggestTags returns lowercased label names for a base64-encoded image.
func (t *TagSuggester) SuggestTags(ctx context.Context, base64Img string) ([]string, error) {
	idx := strings.Index(base64Img, ",")
	if idx < 0 || !strings.HasPrefix(base64Img, "data:image") {
		return nil, errors.New("invalid data URI")
	}
	data, err := base64.StdEncoding.DecodeString(base64Img[idx+1:])
	if err != nil {
		return nil, err
	}

	out, err := t.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}

	var tags []string
	for _, l := range out.Labels {
		tags = append(tags, strings.ToLower(aws.ToString(l.Name)))
	}
	return tags, nil
}
