package types

// ====== CORE TYPES ======

// Author is the structured author attached to a canonical post. It is
// never nil after adaptation; rendering code does not branch on a
// missing author.
type Author struct {
	ID           int    `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Post is the canonical client-side article shape produced by the
// adapter. CreatedDate and ReadTime are display strings, not timestamps.
type Post struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Content     string   `json:"content"`
	Author      Author   `json:"author"`
	ReadTime    string   `json:"readTime"`
	CreatedDate string   `json:"createdDate"`
	Likes       int      `json:"likes"`
	Comments    int      `json:"comments"`
	Bookmarks   int      `json:"bookmarks"`
	Shares      int      `json:"shares"`
	ImageURL    string   `json:"imageUrl"`
	Featured    bool     `json:"featured"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category,omitempty"`
}

// Comment is a reader comment on a post. IDs are assigned client-side
// (max existing id + 1) until a real comment endpoint exists.
type Comment struct {
	ID      int    `json:"id"`
	PostID  int    `json:"postId"`
	Author  string `json:"author"`
	Content string `json:"content"`
	Date    string `json:"date"`
	Likes   int    `json:"likes"`
}

// ====== RAW WIRE TYPES ======

// RawTag is how the backend ships tags: objects carrying a name plus
// metadata the client discards.
type RawTag struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

// RawPost mirrors a backend post record before normalization. Author is
// a pointer so the adapter can tell an absent author from a zero one.
type RawPost struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Content     string   `json:"content"`
	Author      *Author  `json:"author,omitempty"`
	ReadTime    string   `json:"readTime,omitempty"`
	CreatedDate string   `json:"createdDate,omitempty"`
	Likes       int      `json:"likes,omitempty"`
	Comments    int      `json:"comments,omitempty"`
	Bookmarks   int      `json:"bookmarks,omitempty"`
	Shares      int      `json:"shares,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Featured    bool     `json:"featured,omitempty"`
	Tags        []RawTag `json:"tags,omitempty"`
	Category    string   `json:"category,omitempty"`
}

// ====== REQUEST / RESPONSE TYPES ======

// PostEnvelope wraps every post-bearing response. Content may be null on
// failure; callers check Success before trusting it.
type PostEnvelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Content []RawPost `json:"content"`
}

// CreatePostRequest is the publish payload. Counters are sent zeroed;
// the server is authoritative for the final id and created date.
type CreatePostRequest struct {
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle"`
	Content   string   `json:"content"`
	ReadTime  string   `json:"readTime"`
	ImageURL  string   `json:"imageUrl"`
	Featured  bool     `json:"featured"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	Likes     int      `json:"likes"`
	Bookmarks int      `json:"bookmarks"`
	Shares    int      `json:"shares"`
}

// MutationResponse is the ack returned by create and other mutating
// endpoints that do not echo the updated entity.
type MutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
