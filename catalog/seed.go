package catalog

import "time"

// Seed returns the fixed fallback catalog served whenever no live source can
// answer. The UI never shows a blank marketplace because of a backend outage.
func Seed() []Listing {
	return []Listing{
		{
			ID:             "1",
			ConsortiumType: TypeProperty,
			CreditValue:    250000,
			Administrator:  "Porto Seguro",
			PaidPercentage: 35,
			EntryValue:     45000,
			Description:    "Carta de imóvel contemplada, excelente oportunidade para aquisição de casa própria.",
			IsVerified:     true,
			ViewsCount:     127,
			CreatedAt:      seedDate(2025, time.January, 20),
		},
		{
			ID:             "2",
			ConsortiumType: TypeVehicle,
			CreditValue:    85000,
			Administrator:  "Bradesco Consórcios",
			PaidPercentage: 28,
			EntryValue:     22000,
			Description:    "Carta de veículo contemplada para compra de carro novo ou seminovo.",
			IsVerified:     true,
			ViewsCount:     89,
			CreatedAt:      seedDate(2025, time.January, 22),
		},
		{
			ID:             "3",
			ConsortiumType: TypeProperty,
			CreditValue:    180000,
			Administrator:  "Itaú Consórcios",
			PaidPercentage: 45,
			EntryValue:     38000,
			Description:    "Consórcio de imóvel com boas condições de pagamento.",
			IsVerified:     true,
			ViewsCount:     156,
			CreatedAt:      seedDate(2025, time.January, 18),
		},
		{
			ID:             "4",
			ConsortiumType: TypeVehicle,
			CreditValue:    120000,
			Administrator:  "Santander",
			PaidPercentage: 20,
			EntryValue:     28000,
			Description:    "Carta de veículo recém contemplada, ideal para caminhonete ou SUV.",
			IsVerified:     false,
			ViewsCount:     64,
			CreatedAt:      seedDate(2025, time.January, 25),
		},
		{
			ID:             "5",
			ConsortiumType: TypeProperty,
			CreditValue:    450000,
			Administrator:  "Caixa Consórcios",
			PaidPercentage: 52,
			EntryValue:     95000,
			Description:    "Carta de alto valor para imóvel de luxo ou comercial.",
			IsVerified:     true,
			ViewsCount:     203,
			CreatedAt:      seedDate(2025, time.January, 15),
		},
		{
			ID:             "6",
			ConsortiumType: TypeVehicle,
			CreditValue:    55000,
			Administrator:  "BB Consórcios",
			PaidPercentage: 15,
			EntryValue:     12000,
			Description:    "Carta de veículo com entrada acessível, contemplada há 2 meses.",
			IsVerified:     true,
			ViewsCount:     78,
			CreatedAt:      seedDate(2025, time.January, 24),
		},
	}
}

func seedDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
