package domain

// All monetary fields are integer paise. Conversion to rupees happens only at
// render boundaries (email bodies).

type Product struct {
	ID           string `db:"id" json:"id"`
	CategoryID   string `db:"category_id" json:"categoryId"`
	Name         string `db:"name" json:"name"`
	Description  string `db:"description" json:"description"`
	PricePaise   int64  `db:"price_paise" json:"price"`
	Stock        int    `db:"stock" json:"stock"`
	Version      int64  `db:"version" json:"-"`
	FeaturedImg  string `db:"featured_image_url" json:"featuredImageUrl"`
	GalleryJSON  string `db:"gallery_json" json:"-"`
	DetailJSON   string `db:"detail_images_json" json:"-"`
	Active       bool   `db:"active" json:"active"`
	Availability string `db:"-" json:"availability,omitempty"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	CreatedAt    string `db:"created_at" json:"createdAt"`
	UpdatedAt    string `db:"updated_at" json:"updatedAt,omitempty"`
}

// OptionAddon is one row of the fixed option -> surcharge table. Option codes
// not present in the table carry no surcharge.
type OptionAddon struct {
	Code           string `db:"code" json:"code"`
	Label          string `db:"label" json:"label"`
	SurchargePaise int64  `db:"surcharge_paise" json:"surcharge"`
}

type Order struct {
	ID            string `db:"id" json:"orderId"`
	PaymentID     string `db:"payment_id" json:"paymentId,omitempty"`
	Receipt       string `db:"receipt" json:"receipt,omitempty"`
	SubtotalPaise int64  `db:"subtotal_paise" json:"subtotal"`
	ShippingPaise int64  `db:"shipping_paise" json:"shipping"`
	CODFeePaise   int64  `db:"cod_fee_paise" json:"codFee"`
	DiscountPaise int64  `db:"discount_paise" json:"discount"`
	TotalPaise    int64  `db:"total_paise" json:"total"`
	CouponCode    string `db:"coupon_code" json:"couponCode,omitempty"`
	PaymentMethod string `db:"payment_method" json:"paymentMethod"` // ONLINE | COD
	PaymentStatus string `db:"payment_status" json:"paymentStatus"` // Paid | Pending
	Status        string `db:"status" json:"status"`                // Paid | Pending
	EmailSent     bool   `db:"email_sent" json:"emailSent"`
	CreatedAt     string `db:"created_at" json:"createdAt"`

	Shipping ShippingDetails `db:"-" json:"shippingDetails"`
	Items    []OrderItem     `db:"-" json:"items"`
}

// OrderItem snapshots the catalog state at order-write time. The price
// snapshot is immutable afterwards even if the catalog price changes.
type OrderItem struct {
	OrderID        string `db:"order_id" json:"-"`
	ProductID      string `db:"product_id" json:"productId"`
	Name           string `db:"name" json:"name"`
	UnitPricePaise int64  `db:"unit_price_paise" json:"price"`
	Quantity       int    `db:"qty" json:"quantity"`
	OptionsJSON    string `db:"options_json" json:"-"`
	ImageURL       string `db:"image_url" json:"image"`
}

type ShippingDetails struct {
	Email     string `db:"email" json:"email"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
	Address   string `db:"address" json:"address"`
	Apartment string `db:"apartment" json:"apartment,omitempty"`
	City      string `db:"city" json:"city"`
	State     string `db:"state" json:"state"`
	Pincode   string `db:"pincode" json:"pincode"`
	Phone     string `db:"phone" json:"phone"`
}

type Review struct {
	ID        string `db:"id" json:"id"`
	ItemID    string `db:"item_id" json:"itemId"`
	ItemKind  string `db:"item_kind" json:"itemKind"` // product | spot
	Author    string `db:"author" json:"author"`
	Rating    int    `db:"rating" json:"rating"`
	Body      string `db:"body" json:"body"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type Coupon struct {
	Code             string `db:"code" json:"code"`
	Kind             string `db:"kind" json:"kind"` // percent | flat
	Value            int64  `db:"value" json:"value"`
	MinSubtotalPaise int64  `db:"min_subtotal_paise" json:"minSubtotal"`
	Active           bool   `db:"active" json:"active"`
	ExpiresAt        string `db:"expires_at" json:"expiresAt,omitempty"`
}

type City struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	State    string `db:"state" json:"state"`
	HeroImg  string `db:"hero_image_url" json:"heroImageUrl"`
	Featured bool   `db:"featured" json:"featured"`
}

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	ImageURL  string `db:"image_url" json:"imageUrl"`
	SortOrder int    `db:"sort_order" json:"sortOrder"`
}

type Spot struct {
	ID          string  `db:"id" json:"id"`
	CityID      string  `db:"city_id" json:"cityId"`
	Name        string  `db:"name" json:"name"`
	Category    string  `db:"category" json:"category"`
	Description string  `db:"description" json:"description"`
	ImageURL    string  `db:"image_url" json:"imageUrl"`
	MapURL      string  `db:"map_url" json:"mapUrl"`
	AvgRating   float64 `db:"avg_rating" json:"avgRating"`
}

type Ambassador struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CityID    string `db:"city_id" json:"cityId"`
	Bio       string `db:"bio" json:"bio"`
	AvatarURL string `db:"avatar_url" json:"avatarUrl"`
	Instagram string `db:"instagram" json:"instagram"`
}

// StorefrontContent holds one CMS document (home_content, navigation) as raw JSON.
type StorefrontContent struct {
	Key       string `db:"key" json:"key"`
	BodyJSON  string `db:"body_json" json:"body"`
	UpdatedAt string `db:"updated_at" json:"updatedAt"`
}

// Favorite is one saved spot/product id on a user record.
type Favorite struct {
	UserID    string `db:"user_id" json:"-"`
	ItemID    string `db:"item_id" json:"itemId"`
	ItemKind  string `db:"item_kind" json:"itemKind"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
