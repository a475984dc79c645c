package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog/content if the DB is empty.
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start).
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates all tables. Exported so tests can build :memory: DBs
// against the real schema.
func EnsureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  image_url TEXT DEFAULT '',
  sort_order INTEGER DEFAULT 0
);

-- Products. Prices are integer paise. version guards the optimistic
-- stock decrement.
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL DEFAULT '',
  name TEXT NOT NULL,
  description TEXT DEFAULT '',
  price_paise INTEGER NOT NULL CHECK (price_paise >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  version INTEGER NOT NULL DEFAULT 0,
  featured_image_url TEXT DEFAULT '',
  gallery_json TEXT DEFAULT '[]',
  detail_images_json TEXT DEFAULT '[]',
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Fixed option -> surcharge table
CREATE TABLE IF NOT EXISTS option_addons(
  code TEXT PRIMARY KEY,
  label TEXT NOT NULL,
  surcharge_paise INTEGER NOT NULL CHECK (surcharge_paise >= 0)
);

-- Orders. id is the payment gateway's order handle (COD orders get a UUID),
-- which makes a replayed write a duplicate-key no-op.
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  payment_id TEXT DEFAULT '',
  receipt TEXT DEFAULT '',
  subtotal_paise INTEGER NOT NULL,
  shipping_paise INTEGER NOT NULL DEFAULT 0,
  cod_fee_paise INTEGER NOT NULL DEFAULT 0,
  discount_paise INTEGER NOT NULL DEFAULT 0,
  total_paise INTEGER NOT NULL,
  coupon_code TEXT DEFAULT '',
  payment_method TEXT NOT NULL CHECK (payment_method IN ('ONLINE','COD')),
  payment_status TEXT NOT NULL,
  status TEXT NOT NULL,
  email TEXT NOT NULL,
  first_name TEXT DEFAULT '',
  last_name TEXT DEFAULT '',
  address TEXT DEFAULT '',
  apartment TEXT DEFAULT '',
  city TEXT DEFAULT '',
  state TEXT DEFAULT '',
  pincode TEXT DEFAULT '',
  phone TEXT DEFAULT '',
  email_sent INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
CREATE INDEX IF NOT EXISTS idx_orders_email      ON orders(email);

CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  unit_price_paise INTEGER NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  options_json TEXT DEFAULT '{}',
  image_url TEXT DEFAULT '',
  PRIMARY KEY (order_id, product_id)
);

-- Reviews for products and spots
CREATE TABLE IF NOT EXISTS reviews(
  id TEXT PRIMARY KEY,
  item_id TEXT NOT NULL,
  item_kind TEXT NOT NULL CHECK (item_kind IN ('product','spot')),
  author TEXT NOT NULL,
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  body TEXT DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_reviews_item ON reviews(item_kind, item_id);

-- Coupons
CREATE TABLE IF NOT EXISTS coupons(
  code TEXT PRIMARY KEY,
  kind TEXT NOT NULL CHECK (kind IN ('percent','flat')),
  value INTEGER NOT NULL CHECK (value > 0),
  min_subtotal_paise INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  expires_at TEXT DEFAULT ''
);

-- CMS-style storefront documents (home_content, navigation)
CREATE TABLE IF NOT EXISTS storefront(
  key TEXT PRIMARY KEY,
  body_json TEXT NOT NULL,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Local-discovery content
CREATE TABLE IF NOT EXISTS cities(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  state TEXT DEFAULT '',
  hero_image_url TEXT DEFAULT '',
  featured INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS spots(
  id TEXT PRIMARY KEY,
  city_id TEXT NOT NULL REFERENCES cities(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  category TEXT DEFAULT '',
  description TEXT DEFAULT '',
  image_url TEXT DEFAULT '',
  map_url TEXT DEFAULT '',
  avg_rating REAL NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_spots_city ON spots(city_id);

CREATE TABLE IF NOT EXISTS ambassadors(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  city_id TEXT DEFAULT '',
  bio TEXT DEFAULT '',
  avatar_url TEXT DEFAULT '',
  instagram TEXT DEFAULT ''
);

-- Users & favorites
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS user_favorites(
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  item_id TEXT NOT NULL,
  item_kind TEXT NOT NULL CHECK (item_kind IN ('product','spot')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (user_id, item_id, item_kind)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo catalog/content")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name,sort_order) VALUES
	  ('katan-silk','Katan Silk Sarees',1),
	  ('georgette','Georgette Sarees',2),
	  ('dupattas','Banarasi Dupattas',3)`)

	tx.MustExec(`INSERT INTO products(id,category_id,name,description,price_paise,stock,featured_image_url,gallery_json) VALUES
	  ('saree-katan-rani','katan-silk','Rani Pink Katan Silk Saree','Handwoven katan silk with kadwa border.',1250000,6,'products/saree-katan-rani/main.jpg','["products/saree-katan-rani/1.jpg"]'),
	  ('saree-georgette-teal','georgette','Teal Khaddi Georgette Saree','Khaddi georgette with silver zari bootis.',780000,4,'products/saree-georgette-teal/main.jpg','[]'),
	  ('dupatta-meen-gold','dupattas','Gold Meenakari Dupatta','Pure silk dupatta with meenakari work.',320000,12,'products/dupatta-meen-gold/main.jpg','[]')`)

	tx.MustExec(`INSERT INTO option_addons(code,label,surcharge_paise) VALUES
	  ('fall_pico','Fall & Pico',15000),
	  ('blouse_stitching','Blouse Stitching',120000),
	  ('tassels','Tassels',25000)`)

	tx.MustExec(`INSERT INTO coupons(code,kind,value,min_subtotal_paise) VALUES
	  ('FESTIVE10','percent',10,500000),
	  ('WELCOME200','flat',20000,100000)`)

	tx.MustExec(`INSERT INTO storefront(key,body_json) VALUES
	  ('home_content','{"heroTitle":"Authentic Heritage Silks","heroImage":"home/hero.jpg"}'),
	  ('navigation','{"links":[{"label":"Shop","path":"/shop"},{"label":"Cities","path":"/cities"}]}')`)

	tx.MustExec(`INSERT INTO cities(id,name,state,featured) VALUES
	  ('varanasi','Varanasi','Uttar Pradesh',1)`)

	tx.MustExec(`INSERT INTO spots(id,city_id,name,category,description,avg_rating) VALUES
	  ('assi-ghat','varanasi','Assi Ghat','ghat','Southern ghat known for morning aarti.',4.6),
	  ('kachori-gali','varanasi','Kachori Gali','food','Lane of kachori and jalebi shops.',4.4)`)

	tx.MustExec(`INSERT INTO ambassadors(id,name,city_id,bio,instagram) VALUES
	  ('amb-kashi-01','Aarti Srivastava','varanasi','Weaver-family storyteller.','@kashi.weaves')`)

	return tx.Commit()
}

// seedUsers ensures one ADMIN and one USER exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-admin", "admin@pahnawa.test", "Admin", "ADMIN", "Passw0rd!"),
		mk("u-meera", "meera@pahnawa.test", "Meera", "USER", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
