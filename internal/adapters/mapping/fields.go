package mapping

// Placeholder is shown for auctions without any image
const Placeholder = "/images/placeholder-auction.jpg"

// AuctionFields maps auction records. The list endpoint emits camelCase,
// detail and seller endpoints emit PascalCase, some use older names.
var AuctionFields = NewTable(
	Field{Canonical: "id", Aliases: []string{"auctionId", "AuctionId", "auctionID", "AuctionID"}},
	Field{Canonical: "title"},
	Field{Canonical: "description"},
	Field{Canonical: "category", Aliases: []string{"categoryName", "CategoryName"}},
	Field{Canonical: "location"},
	Field{Canonical: "condition"},
	Field{Canonical: "startingPrice", Aliases: []string{"startPrice", "StartPrice"}},
	Field{Canonical: "currentPrice", Aliases: []string{"currentBid", "CurrentBid"}},
	Field{Canonical: "reservePrice"},
	Field{Canonical: "buyNowPrice"},
	Field{Canonical: "bidCount", Aliases: []string{"totalBids", "TotalBids", "bidsCount", "BidsCount"}},
	Field{Canonical: "status"},
	Field{Canonical: "startTime", Aliases: []string{"startDate", "StartDate"}},
	Field{Canonical: "endTime", Aliases: []string{"endDate", "EndDate"}},
	Field{Canonical: "duration", Aliases: []string{"durationDays", "DurationDays"}},
	Field{Canonical: "sellerId", Aliases: []string{"userId", "UserId"}},
	Field{Canonical: "seller", Aliases: []string{"sellerName", "SellerName", "user", "User"}},
	Field{Canonical: "images", Aliases: []string{"imageUrls", "ImageUrls", "auctionImages", "AuctionImages"}},
	Field{Canonical: "imageUrl", Aliases: []string{"primaryImageUrl", "PrimaryImageUrl", "image", "Image"}},
	Field{Canonical: "shippingInfo"},
	Field{Canonical: "tags"},
)

// SellerFields maps the embedded seller summary
var SellerFields = NewTable(
	Field{Canonical: "id", Aliases: []string{"userId", "UserId", "sellerId", "SellerId"}},
	Field{Canonical: "name", Aliases: []string{"fullName", "FullName", "userName", "UserName"}},
	Field{Canonical: "firstName"},
	Field{Canonical: "lastName"},
	Field{Canonical: "email"},
)

// BidFields maps bid records
var BidFields = NewTable(
	Field{Canonical: "id", Aliases: []string{"bidId", "BidId"}},
	Field{Canonical: "auctionId"},
	Field{Canonical: "amount", Aliases: []string{"bidAmount", "BidAmount"}},
	Field{Canonical: "bidderId", Aliases: []string{"userId", "UserId"}},
	Field{Canonical: "bidderName", Aliases: []string{"userName", "UserName", "bidder", "Bidder"}},
	Field{Canonical: "timestamp", Aliases: []string{"bidTime", "BidTime", "createdAt", "CreatedAt", "placedAt", "PlacedAt"}},
	Field{Canonical: "isWinning", Aliases: []string{"isWinningBid", "IsWinningBid"}},
)

// BidStatsFields maps the bid statistics record
var BidStatsFields = NewTable(
	Field{Canonical: "auctionId"},
	Field{Canonical: "totalBids", Aliases: []string{"bidCount", "BidCount"}},
	Field{Canonical: "uniqueBidders", Aliases: []string{"bidderCount", "BidderCount"}},
	Field{Canonical: "highestBid", Aliases: []string{"maxBid", "MaxBid"}},
	Field{Canonical: "lowestBid", Aliases: []string{"minBid", "MinBid"}},
	Field{Canonical: "averageBid", Aliases: []string{"avgBid", "AvgBid"}},
)

// ImageFields maps auction image records
var ImageFields = NewTable(
	Field{Canonical: "id", Aliases: []string{"imageId", "ImageId"}},
	Field{Canonical: "auctionId"},
	Field{Canonical: "url", Aliases: []string{"imageUrl", "ImageUrl", "filePath", "FilePath"}},
	Field{Canonical: "isPrimary"},
	Field{Canonical: "displayOrder"},
	Field{Canonical: "altText"},
)

// UserFields maps the login/register response and user profiles
var UserFields = NewTable(
	Field{Canonical: "token", Aliases: []string{"accessToken", "AccessToken"}},
	Field{Canonical: "userId", Aliases: []string{"id", "Id"}},
	Field{Canonical: "firstName"},
	Field{Canonical: "lastName"},
	Field{Canonical: "email"},
	Field{Canonical: "accountType", Aliases: []string{"role", "Role"}},
)

// NotificationFields maps dashboard notifications
var NotificationFields = NewTable(
	Field{Canonical: "id", Aliases: []string{"notificationId", "NotificationId"}},
	Field{Canonical: "auctionId"},
	Field{Canonical: "type"},
	Field{Canonical: "message", Aliases: []string{"content", "Content"}},
	Field{Canonical: "isRead", Aliases: []string{"read", "Read"}},
	Field{Canonical: "createdAt", Aliases: []string{"timestamp", "Timestamp"}},
)

// CategoryFields maps category records when they are objects
var CategoryFields = NewTable(
	Field{Canonical: "name", Aliases: []string{"categoryName", "CategoryName", "title", "Title"}},
)
