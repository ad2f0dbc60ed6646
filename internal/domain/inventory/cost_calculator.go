package inventory

import "github.com/shopspring/decimal"

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// WeightedCost acumula el costo promedio ponderado de las líneas de un plan FEFO,
// aplicando CostCalculator lote por lote.
func WeightedCost(lines []AllocationLine) decimal.Decimal {
	qty, cost := decimal.Zero, decimal.Zero
	for _, l := range lines {
		cost = CostCalculator(qty, cost, l.Quantity, l.CostPrice)
		qty = qty.Add(l.Quantity)
	}
	return cost
}

// TotalCost devuelve unitCost * |quantity|, el costo total que se registra en un movimiento.
func TotalCost(unitCost, quantity decimal.Decimal) decimal.Decimal {
	return unitCost.Mul(quantity.Abs())
}
