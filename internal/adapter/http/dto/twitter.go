package dto

// TwitterEvent is an Account Activity API delivery. Exactly one of the event
// lists is normally populated.
type TwitterEvent struct {
	ForUserID           string                      `json:"for_user_id"`
	DirectMessageEvents []TwitterDirectMessageEvent `json:"direct_message_events,omitempty"`
	TweetCreateEvents   []TwitterTweet              `json:"tweet_create_events,omitempty"`
	FollowEvents        []TwitterFollowEvent        `json:"follow_events,omitempty"`
	Users               map[string]TwitterProfile   `json:"users,omitempty"`
}

type TwitterDirectMessageEvent struct {
	Type             string               `json:"type"`
	ID               string               `json:"id"`
	CreatedTimestamp string               `json:"created_timestamp"`
	MessageCreate    TwitterMessageCreate `json:"message_create"`
}

type TwitterMessageCreate struct {
	SenderID string `json:"sender_id"`
	Target   struct {
		RecipientID string `json:"recipient_id"`
	} `json:"target"`
	MessageData struct {
		Text string `json:"text"`
	} `json:"message_data"`
}

type TwitterTweet struct {
	IDStr           string                `json:"id_str"`
	Text            string                `json:"text"`
	Truncated       bool                  `json:"truncated"`
	ExtendedTweet   *TwitterExtendedTweet `json:"extended_tweet,omitempty"`
	User            TwitterUser           `json:"user"`
	Entities        TwitterEntities       `json:"entities"`
	RetweetedStatus *TwitterTweet         `json:"retweeted_status,omitempty"`
}

// TwitterExtendedTweet carries the full text of tweets over 140 characters.
type TwitterExtendedTweet struct {
	FullText string          `json:"full_text"`
	Entities TwitterEntities `json:"entities"`
}

// FullText returns the untruncated text and entities of the tweet.
func (t *TwitterTweet) FullText() (string, TwitterEntities) {
	if t.ExtendedTweet != nil && t.ExtendedTweet.FullText != "" {
		return t.ExtendedTweet.FullText, t.ExtendedTweet.Entities
	}
	return t.Text, t.Entities
}

type TwitterEntities struct {
	UserMentions []TwitterMention `json:"user_mentions"`
}

type TwitterMention struct {
	IDStr      string `json:"id_str"`
	ScreenName string `json:"screen_name"`
}

// TwitterUser is the v1.1 user object embedded in tweets.
type TwitterUser struct {
	IDStr      string `json:"id_str"`
	ScreenName string `json:"screen_name"`
	Lang       string `json:"lang,omitempty"`
}

// TwitterProfile is the user shape of follow events and the users map, where
// the id is already a string.
type TwitterProfile struct {
	ID         string `json:"id"`
	ScreenName string `json:"screen_name"`
}

type TwitterFollowEvent struct {
	Type             string         `json:"type"` // follow, unfollow
	CreatedTimestamp string         `json:"created_timestamp"`
	Source           TwitterProfile `json:"source"`
	Target           TwitterProfile `json:"target"`
}
