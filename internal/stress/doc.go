// Package stress computes the photobiology stress index: a 0–100 composite of
// light, VPD, nutrient, thermal and water stress for a plant at a given growth
// stage, with severity, recommendations and predicted impact.
package stress
