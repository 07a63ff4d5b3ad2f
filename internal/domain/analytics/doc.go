// Package analytics contiene los motores de cálculo del tablero multi-sucursal:
// KPIs, tendencia mensual, riesgo, oportunidad por distrito, pronóstico y
// simulación de escenarios. Todas las funciones son puras: reciben agregados ya
// consultados y no hacen I/O.
package analytics
