package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/VIJAYRUR/fitfoodie-backend/store"
)

// FanoutNotifier delivers a newly published meal to the influencer's
// followers over the live feed and, when a push service is wired, as a
// mobile notification. Fan-out runs in the background and never blocks or
// fails the publish.
type FanoutNotifier struct {
	users store.UserStore
	hub   *FeedHub
	push  *PushService // may be nil
	log   *zap.Logger
}

func NewFanoutNotifier(users store.UserStore, hub *FeedHub, push *PushService) *FanoutNotifier {
	return &FanoutNotifier{users: users, hub: hub, push: push, log: zap.L().Named("fanout")}
}

func (n *FanoutNotifier) MealPublished(influencerID primitive.ObjectID, meal map[string]interface{}) {
	go n.fanout(influencerID, meal)
}

func (n *FanoutNotifier) fanout(influencerID primitive.ObjectID, meal map[string]interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	followers, err := n.users.Followers(ctx, influencerID)
	if err != nil {
		n.log.Warn("follower lookup failed",
			zap.String("influencer_id", influencerID.Hex()),
			zap.Error(err))
		return
	}

	title, _ := meal["title"].(string)
	name, _ := meal["influencer"].(string)
	body := fmt.Sprintf("%s published %s", name, title)
	payload := map[string]interface{}{"type": "meal_published", "meal": meal}

	for _, follower := range followers {
		if n.hub != nil {
			n.hub.Send(follower.ID, payload)
		}
		if n.push != nil {
			n.push.PushToUser(ctx, follower.ID, "New meal", body, map[string]string{
				"meal_id": fmt.Sprint(meal["id"]),
			})
		}
	}
}
