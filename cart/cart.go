package cart

import (
	"errors"
	"sync"

	"github.com/dapurlink/warung-app/models"
)

var (
	// ErrNegativeQuantity dikembalikan untuk qty < 0. Qty 0 berarti hapus baris.
	ErrNegativeQuantity = errors.New("quantity tidak boleh negatif")
	// ErrCheckoutInFlight dikembalikan kalau checkout untuk cart ini masih
	// berjalan: submit kedua dan semua mutasi isi cart ditolak sampai selesai.
	ErrCheckoutInFlight = errors.New("checkout sedang diproses")
)

// Line memasangkan satu menu item dengan quantity positif.
type Line struct {
	MenuItemID uint    `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

func (l Line) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Cart adalah keranjang satu sesi customer, murni in-memory.
// Invariant: maksimal satu Line per MenuItemID; urutan baris = urutan penambahan.
type Cart struct {
	mu    sync.Mutex
	lines []Line

	// guard supaya dua submit checkout untuk sesi yang sama tidak jalan berbarengan
	checkingOut bool
}

// Add menambah item: kalau sudah ada barisnya, quantity naik 1,
// kalau belum, baris baru dengan quantity 1 ditaruh di belakang.
// Selama checkout berjalan mutasi ditolak; tanpa ini, item yang masuk
// di antara snapshot checkout dan Clear akan hilang tanpa pernah dipesan.
func (c *Cart) Add(item models.MenuItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.checkingOut {
		return ErrCheckoutInFlight
	}

	for i := range c.lines {
		if c.lines[i].MenuItemID == item.ID {
			c.lines[i].Quantity++
			return nil
		}
	}

	c.lines = append(c.lines, Line{
		MenuItemID: item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Quantity:   1,
	})
	return nil
}

// SetQuantity mengatur quantity satu baris. Qty 0 menghapus baris,
// id yang tidak ada di cart adalah no-op, qty negatif ditolak.
func (c *Cart) SetQuantity(menuItemID uint, qty int) error {
	if qty < 0 {
		return ErrNegativeQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.checkingOut {
		return ErrCheckoutInFlight
	}

	for i := range c.lines {
		if c.lines[i].MenuItemID != menuItemID {
			continue
		}
		if qty == 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = qty
		}
		return nil
	}
	return nil
}

// TotalAmount = jumlah price*quantity semua baris.
func (c *Cart) TotalAmount() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// TotalItemCount = jumlah quantity semua baris, dipakai badge keranjang.
func (c *Cart) TotalItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Lines mengembalikan salinan baris cart saat ini.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Clear mengosongkan cart, dipanggil setelah checkout berhasil.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// BeginCheckout menandai checkout sedang berjalan. Submit kedua dan
// mutasi isi cart selama yang pertama belum selesai mendapat
// ErrCheckoutInFlight.
func (c *Cart) BeginCheckout() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.checkingOut {
		return ErrCheckoutInFlight
	}
	c.checkingOut = true
	return nil
}

func (c *Cart) EndCheckout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkingOut = false
}
