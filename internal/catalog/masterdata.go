package catalog

// Customer is a master-data customer record.
type Customer struct {
	Number string
	Name   string
}

// Item is a master-data item record.
type Item struct {
	Number      string
	Description string
}

// Customers is the valid customer master data orders are repaired against.
var Customers = []Customer{
	{Number: "10000", Name: "Adatum Corporation"},
	{Number: "20000", Name: "Trey Research"},
	{Number: "30000", Name: "School of Fine Art"},
	{Number: "40000", Name: "Alpine Ski House"},
	{Number: "50000", Name: "Relecloud"},
}

// Items is the valid item master data orders are repaired against.
var Items = []Item{
	{Number: "1896-S", Description: "ATHENS-työpöytä"},
	{Number: "1900-S", Description: "PARIS-vierastuoli, musta"},
	{Number: "1906-S", Description: "ATHENS liikkuva jalusta"},
	{Number: "1908-S", Description: "LONDON-toimistotuoli, sin."},
	{Number: "1920-S", Description: "ANTWERP-kokouspöytä"},
	{Number: "1925-W", Description: "Kokouspaketti 1–6"},
	{Number: "1928-S", Description: "AMSTERDAM-lamppu"},
	{Number: "1929-W", Description: "Jabra speaker - sensitive microphone"},
	{Number: "1936-S", Description: "BERLIN-vierastuoli, keltainen"},
	{Number: "1953-W", Description: "Vierasosio 1"},
	{Number: "1960-S", Description: "ROME-vierastuoli, vihreä"},
	{Number: "1964-S", Description: "TOKYO-vierastuoli, sininen"},
	{Number: "1965-W", Description: "Kokouspaketti 2–8"},
	{Number: "1968-S", Description: "MEXICO-toimistotuoli, musta"},
	{Number: "1969-W", Description: "Kokouspaketti 1"},
	{Number: "1972-S", Description: "MUNICH-toimistotuoli, kelt."},
	{Number: "1980-S", Description: "MOSKOW-toimistotuoli, pun."},
	{Number: "1988-S", Description: "SEOUL-vierastuoli, pun."},
	{Number: "1996-S", Description: "ATLANTA-kovalevy, perus"},
	{Number: "2000-S", Description: "SYDNEY-toimistotuoli, vihreä"},
}

// ItemByNumber returns the master-data item with the exact number.
func ItemByNumber(number string) (Item, bool) {
	for _, item := range Items {
		if item.Number == number {
			return item, true
		}
	}
	return Item{}, false
}

// CustomerByNumber returns the master-data customer with the exact number.
func CustomerByNumber(number string) (Customer, bool) {
	for _, c := range Customers {
		if c.Number == number {
			return c, true
		}
	}
	return Customer{}, false
}
