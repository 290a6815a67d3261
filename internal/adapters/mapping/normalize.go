package mapping

import (
	"strings"

	"auction-storefront/internal/domain/auction"
	"auction-storefront/internal/domain/bid"
	"auction-storefront/internal/domain/image"
	"auction-storefront/internal/domain/shared"

	"github.com/tidwall/gjson"
)

// Auction normalizes one auction record into the canonical shape
func Auction(r gjson.Result) auction.Auction {
	f := AuctionFields
	a := auction.Auction{
		ID:            f.Int(r, "id"),
		Title:         f.String(r, "title"),
		Description:   f.String(r, "description"),
		Category:      nameOf(f.Get(r, "category")),
		Location:      f.String(r, "location"),
		Condition:     f.String(r, "condition"),
		StartingPrice: f.Float(r, "startingPrice"),
		CurrentPrice:  f.Float(r, "currentPrice"),
		ReservePrice:  f.Float(r, "reservePrice"),
		BidCount:      int(f.Int(r, "bidCount")),
		Status:        auction.Status(f.String(r, "status")),
		StartTime:     f.Time(r, "startTime"),
		EndTime:       f.Time(r, "endTime"),
		SellerID:      f.Int(r, "sellerId"),
		Seller:        Seller(f.Get(r, "seller")),
		Images:        auctionImages(r),
	}

	if a.CurrentPrice <= 0 {
		a.CurrentPrice = a.StartingPrice
	}
	if a.SellerID == 0 {
		a.SellerID = a.Seller.ID
	}
	if a.Seller.ID == 0 {
		a.Seller.ID = a.SellerID
	}
	return a
}

// Auctions normalizes a list of auction records
func Auctions(list gjson.Result) []auction.Auction {
	items := list.Array()
	auctions := make([]auction.Auction, 0, len(items))
	for _, item := range items {
		auctions = append(auctions, Auction(item))
	}
	return auctions
}

// Seller normalizes an embedded seller given as an object or a plain name
func Seller(r gjson.Result) auction.SellerSummary {
	if !r.Exists() {
		return auction.SellerSummary{}
	}
	if !r.IsObject() {
		return auction.SellerSummary{Name: strings.TrimSpace(r.String())}
	}

	f := SellerFields
	name := f.String(r, "name")
	if name == "" {
		name = strings.TrimSpace(f.String(r, "firstName") + " " + f.String(r, "lastName"))
	}
	return auction.SellerSummary{
		ID:    f.Int(r, "id"),
		Name:  name,
		Email: f.String(r, "email"),
	}
}

// auctionImages collects image URLs from whichever shape the record uses:
// a list of URLs, a list of image records, or a single URL. Records with no
// image get the placeholder.
func auctionImages(r gjson.Result) []string {
	var urls []string

	images := AuctionFields.Get(r, "images")
	switch {
	case images.IsArray():
		var records []image.Image
		for _, item := range images.Array() {
			if item.IsObject() {
				records = append(records, Image(item))
				continue
			}
			if s := strings.TrimSpace(item.String()); s != "" {
				urls = append(urls, s)
			}
		}
		for _, img := range image.Gallery(records) {
			if img.URL != "" {
				urls = append(urls, img.URL)
			}
		}
	case images.Type == gjson.String && strings.TrimSpace(images.Str) != "":
		urls = append(urls, strings.TrimSpace(images.Str))
	}

	if len(urls) == 0 {
		if single := AuctionFields.String(r, "imageUrl"); single != "" {
			urls = append(urls, single)
		}
	}

	if len(urls) == 0 {
		return []string{Placeholder}
	}
	return urls
}

// Bid normalizes one bid record
func Bid(r gjson.Result) bid.Bid {
	f := BidFields
	b := bid.Bid{
		ID:        f.Int(r, "id"),
		AuctionID: f.Int(r, "auctionId"),
		Amount:    f.Float(r, "amount"),
		BidderID:  f.Int(r, "bidderId"),
		Timestamp: f.Time(r, "timestamp"),
		IsWinning: f.Bool(r, "isWinning"),
	}

	bidder := f.Get(r, "bidderName")
	if bidder.IsObject() {
		summary := Seller(bidder)
		b.BidderName = summary.Name
		if b.BidderID == 0 {
			b.BidderID = summary.ID
		}
	} else {
		b.BidderName = strings.TrimSpace(bidder.String())
	}
	return b
}

// Bids normalizes a list of bid records
func Bids(list gjson.Result) []bid.Bid {
	items := list.Array()
	bids := make([]bid.Bid, 0, len(items))
	for _, item := range items {
		bids = append(bids, Bid(item))
	}
	return bids
}

// BidStats normalizes the bid statistics record
func BidStats(r gjson.Result) bid.Stats {
	f := BidStatsFields
	return bid.Stats{
		AuctionID:     f.Int(r, "auctionId"),
		TotalBids:     int(f.Int(r, "totalBids")),
		UniqueBidders: int(f.Int(r, "uniqueBidders")),
		HighestBid:    f.Float(r, "highestBid"),
		LowestBid:     f.Float(r, "lowestBid"),
		AverageBid:    f.Float(r, "averageBid"),
	}
}

// Image normalizes one image record
func Image(r gjson.Result) image.Image {
	f := ImageFields
	return image.Image{
		ID:           f.Int(r, "id"),
		AuctionID:    f.Int(r, "auctionId"),
		URL:          f.String(r, "url"),
		IsPrimary:    f.Bool(r, "isPrimary"),
		DisplayOrder: int(f.Int(r, "displayOrder")),
		AltText:      f.String(r, "altText"),
	}
}

// Images normalizes a list of image records
func Images(list gjson.Result) []image.Image {
	items := list.Array()
	images := make([]image.Image, 0, len(items))
	for _, item := range items {
		images = append(images, Image(item))
	}
	return images
}

// User normalizes a user profile
func User(r gjson.Result) shared.User {
	f := UserFields
	return shared.User{
		ID:          f.Int(r, "userId"),
		FirstName:   f.String(r, "firstName"),
		LastName:    f.String(r, "lastName"),
		Email:       f.String(r, "email"),
		AccountType: f.String(r, "accountType"),
	}
}

// Session normalizes a login or register response. The profile may sit next
// to the token or inside a nested user object.
func Session(r gjson.Result) shared.Session {
	profile := r
	for _, key := range []string{"user", "User"} {
		if nested := r.Get(key); nested.IsObject() {
			profile = nested
			break
		}
	}
	return shared.Session{
		Token: UserFields.String(r, "token"),
		User:  User(profile),
	}
}

// Notification normalizes a dashboard notification
func Notification(r gjson.Result) shared.Notification {
	f := NotificationFields
	return shared.Notification{
		ID:        f.Int(r, "id"),
		AuctionID: f.Int(r, "auctionId"),
		Type:      f.String(r, "type"),
		Message:   f.String(r, "message"),
		IsRead:    f.Bool(r, "isRead"),
		CreatedAt: f.Time(r, "createdAt"),
	}
}

// Notifications normalizes a list of notifications
func Notifications(list gjson.Result) []shared.Notification {
	items := list.Array()
	notifications := make([]shared.Notification, 0, len(items))
	for _, item := range items {
		notifications = append(notifications, Notification(item))
	}
	return notifications
}

// Categories reads category names from strings or category records
func Categories(list gjson.Result) []string {
	items := list.Array()
	categories := make([]string, 0, len(items))
	for _, item := range items {
		if name := nameOf(item); name != "" {
			categories = append(categories, name)
		}
	}
	return categories
}

// nameOf reads a name from a plain string or a {name: ...} record
func nameOf(r gjson.Result) string {
	if r.IsObject() {
		return CategoryFields.String(r, "name")
	}
	return strings.TrimSpace(r.String())
}
