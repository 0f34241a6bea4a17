package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// UnhandledConstituentError reports a nodal factor or Greenwich argument
// request for a constituent with no formula branch.
type UnhandledConstituentError struct {
	Constituent string
}

func (e *UnhandledConstituentError) Error() string {
	return fmt.Sprintf("unhandled constituent %q", e.Constituent)
}

// Tidefac computes the astronomical factors for one constituent over one
// simulation window. It is a pure value of the (start date, run duration,
// constituent) triple; construct one per query and discard it.
//
// Nodal factors follow the classical Schureman equations (EQ73..EQ235);
// Greenwich arguments are linear combinations of the mean solar/lunar
// elements with node-dependent corrections. All linear terms are held in
// degrees and converted to radians only at trig evaluation.
type Tidefac struct {
	startDate   time.Time
	runDuration time.Duration
	constituent string
}

// NewTidefac builds a factor engine for the given window and constituent.
// A leading underscore on the constituent name (the internal escape for
// digit-leading names such as "2N2") is stripped. The run duration must
// be a whole number of seconds.
func NewTidefac(startDate time.Time, runDuration time.Duration, constituent string) (*Tidefac, error) {
	if runDuration != runDuration.Truncate(time.Second) {
		return nil, fmt.Errorf("run duration %s is not a whole number of seconds", runDuration)
	}
	return &Tidefac{
		startDate:   startDate.UTC(),
		runDuration: runDuration,
		constituent: strings.TrimPrefix(constituent, "_"),
	}, nil
}

// StartDate returns the simulation start date.
func (t *Tidefac) StartDate() time.Time { return t.startDate }

// RunDuration returns the simulation run duration.
func (t *Tidefac) RunDuration() time.Duration { return t.runDuration }

// Constituent returns the canonical constituent name.
func (t *Tidefac) Constituent() string { return t.constituent }

// SpeciesType returns the constituent's tidal species number.
func (t *Tidefac) SpeciesType() (int, error) {
	return SpeciesType(t.constituent)
}

// PotentialAmplitude returns the constituent's tidal potential amplitude.
func (t *Tidefac) PotentialAmplitude() (float64, error) {
	return PotentialAmplitude(t.constituent)
}

// OrbitalFrequency returns the constituent's angular frequency.
func (t *Tidefac) OrbitalFrequency() (float64, error) {
	return OrbitalFrequency(t.constituent)
}

// NodalFactor returns the amplitude correction for the 18.6-year lunar
// nodal cycle, sampled at the middle of the run.
func (t *Tidefac) NodalFactor() (float64, error) {
	switch t.constituent {
	case "M2":
		return t.eq78(), nil
	case "S2":
		return 1., nil
	case "N2":
		return t.eq78(), nil
	case "K1":
		return t.eq227(), nil
	case "M4":
		return t.eq78() * t.eq78(), nil
	case "O1":
		return t.eq75(), nil
	case "M6":
		return t.eq78() * t.eq78() * t.eq78(), nil
	case "MK3":
		return t.eq78() * t.eq227(), nil
	case "S4":
		return 1.0, nil
	case "MN4":
		return t.eq78() * t.eq78(), nil
	case "Nu2":
		return t.eq78(), nil
	case "S6":
		return 1.0, nil
	case "MU2":
		return t.eq78(), nil
	case "2N2":
		return t.eq78(), nil
	case "OO1":
		return t.eq77(), nil
	case "lambda2":
		return t.eq78(), nil
	case "S1":
		return 1.0, nil
	case "M1":
		return t.eq207(), nil
	case "J1":
		return t.eq76(), nil
	case "Mm":
		return t.eq73(), nil
	case "Ssa":
		return 1.0, nil
	case "Sa":
		return 1.0, nil
	case "Msf":
		return t.eq78(), nil
	case "Mf":
		return t.eq74(), nil
	case "RHO":
		return t.eq75(), nil
	case "Q1":
		return t.eq75(), nil
	case "T2":
		return 1.0, nil
	case "R2":
		return 1.0, nil
	case "2Q1":
		return t.eq75(), nil
	case "P1":
		return 1.0, nil
	case "2SM2":
		return t.eq78(), nil
	case "M3":
		return t.eq149(), nil
	case "L2":
		return t.eq215(), nil
	case "2MK3":
		return t.eq227() * t.eq78() * t.eq78(), nil
	case "K2":
		return t.eq235(), nil
	case "M8":
		eq78 := t.eq78()
		return eq78 * eq78 * eq78 * eq78, nil
	case "MS4":
		return t.eq78(), nil
	case "Z0":
		return 1., nil
	default:
		return 0, &UnhandledConstituentError{Constituent: t.constituent}
	}
}

// GreenwichFactor returns the equilibrium argument at the Greenwich
// meridian in degrees, reduced into [0, 360).
func (t *Tidefac) GreenwichFactor() (float64, error) {
	var result float64
	switch t.constituent {
	case "M2":
		result = 2.0*(t.dT()-t.dS()+t.dH()) + 2.0*(t.dXI()-t.dNU())
	case "S2":
		result = 2.0 * t.dT()
	case "N2":
		result = 2.0*(t.dT()+t.dH()) - 3.0*t.dS() + t.dP() + 2.0*(t.dXI()-t.dNU())
	case "K1":
		result = t.dT() + t.dH() - 90.0 - t.dNUP()
	case "M4":
		result = 4.0*(t.dT()-t.dS()+t.dH()) + 4.0*(t.dXI()-t.dNU())
	case "O1":
		result = t.dT() - 2.0*t.dS() + t.dH() + 90.0 + 2.0*t.dXI() - t.dNU()
	case "M6":
		result = 6.0*(t.dT()-t.dS()+t.dH()) + 6.0*(t.dXI()-t.dNU())
	case "MK3":
		result = 3.0*(t.dT()+t.dH()) - 2.0*t.dS() - 90.0 + 2.0*(t.dXI()-t.dNU()) - t.dNUP()
	case "S4":
		result = 4.0 * t.dT()
	case "MN4":
		result = 4.0*(t.dT()+t.dH()) - 5.0*t.dS() + t.dP() + 4.0*(t.dXI()-t.dNU())
	case "Nu2":
		result = 2.0*t.dT() - 3.0*t.dS() + 4.0*t.dH() - t.dP() + 2.0*(t.dXI()-t.dNU())
	case "S6":
		result = 6.0 * t.dT()
	case "MU2":
		result = 2.0*(t.dT()+2.0*(t.dH()-t.dS())) + 2.0*(t.dXI()-t.dNU())
	case "2N2":
		result = 2.0*(t.dT()-2.0*t.dS()+t.dH()+t.dP()) + 2.0*(t.dXI()-t.dNU())
	case "OO1":
		result = t.dT() + 2.0*t.dS() + t.dH() - 90.0 - 2.0*t.dXI() - t.dNU()
	case "lambda2":
		result = 2.0*t.dT() - t.dS() + t.dP() + 180.0 + 2.0*(t.dXI()-t.dNU())
	case "S1":
		result = t.dT()
	case "M1":
		result = t.dT() - t.dS() + t.dH() - 90.0 + t.dXI() - t.dNU() + t.dQ()
	case "J1":
		result = t.dT() + t.dS() + t.dH() - t.dP() - 90.0 - t.dNU()
	case "Mm":
		result = t.dS() - t.dP()
	case "Ssa":
		result = 2.0 * t.dH()
	case "Sa":
		result = t.dH()
	case "Msf":
		result = 2.0 * (t.dS() - t.dH())
	case "Mf":
		result = 2.0*t.dS() - 2.0*t.dXI()
	case "RHO":
		result = t.dT() + 3.0*(t.dH()-t.dS()) - t.dP() + 90.0 + 2.0*t.dXI() - t.dNU()
	case "Q1":
		result = t.dT() - 3.0*t.dS() + t.dH() + t.dP() + 90.0 + 2.0*t.dXI() - t.dNU()
	case "T2":
		result = 2.0*t.dT() - t.dH() + t.dP1()
	case "R2":
		result = 2.0*t.dT() + t.dH() - t.dP1() + 180.0
	case "2Q1":
		result = t.dT() - 4.0*t.dS() + t.dH() + 2.0*t.dP() + 90.0 + 2.0*t.dXI() - t.dNU()
	case "P1":
		result = t.dT() - t.dH() + 90.0
	case "2SM2":
		result = 2.0*(t.dT()+t.dS()-t.dH()) + 2.0*(t.dNU()-t.dXI())
	case "M3":
		result = 3.0*(t.dT()-t.dS()+t.dH()) + 3.0*(t.dXI()-t.dNU())
	case "L2":
		result = 2.0*(t.dT()+t.dH()) - t.dS() - t.dP() + 180.0 + 2.0*(t.dXI()-t.dNU()) - t.dR()
	case "2MK3":
		result = 3.0*(t.dT()+t.dH()) - 4.0*t.dS() + 90.0 + 4.0*(t.dXI()-t.dNU()) + t.dNUP()
	case "K2":
		result = 2.0*(t.dT()+t.dH()) - 2.0*t.dNUP2()
	case "M8":
		result = 8.0*(t.dT()-t.dS()+t.dH()) + 8.0*(t.dXI()-t.dNU())
	case "MS4":
		result = 2.0*(2.0*t.dT()-t.dS()+t.dH()) + 2.0*(t.dXI()-t.dNU())
	case "Z0":
		result = 0.0
	default:
		return 0, &UnhandledConstituentError{Constituent: t.constituent}
	}
	return wrap360(result), nil
}

// wrap360 reduces an angle in degrees into [0, 360).
func wrap360(deg float64) float64 {
	m := math.Mod(deg, 360.0)
	if m < 0 {
		m += 360.0
	}
	return m
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// hourMiddle is the start hour plus half the run duration in hours. The
// node and perigee are sampled mid-run, so the half-duration offset is
// part of the contract, not an approximation.
func (t *Tidefac) hourMiddle() float64 {
	startHour := float64(t.startDate.Hour())
	durationInHours := t.runDuration.Seconds() / 3600.0
	return startHour + durationInHours/2.0
}

// dYR is years since 1900.
func (t *Tidefac) dYR() float64 {
	return float64(t.startDate.Year()) - 1900.
}

// dDAY is the day of year adjusted for whole leap years elapsed since
// 1901, zero-based.
func (t *Tidefac) dDAY() int {
	dayOfYear := t.startDate.YearDay()
	yearsSince1901 := t.startDate.Year() - 1901
	leapYearsSince1901 := (yearsSince1901 - 1) / 4
	return dayOfYear + leapYearsSince1901 - 1
}

func (t *Tidefac) lunarNode() float64 {
	return 259.1560564 -
		19.328185764*t.dYR() -
		0.0529539336*float64(t.dDAY()) -
		0.0022064139*t.hourMiddle()
}

func (t *Tidefac) lunarPerigee() float64 {
	return 334.3837214 +
		40.66246584*t.dYR() +
		0.111404016*float64(t.dDAY()) +
		0.004641834*t.hourMiddle()
}

func (t *Tidefac) lunarMeanLongitude() float64 {
	return 277.0256206 +
		129.38482032*t.dYR() +
		13.176396768*float64(t.dDAY()) +
		0.549016532*float64(t.startDate.Hour())
}

func (t *Tidefac) solarPerigee() float64 {
	return 281.2208569 +
		0.01717836*t.dYR() +
		0.000047064*float64(t.dDAY()) +
		0.000001961*float64(t.startDate.Hour())
}

func (t *Tidefac) solarMeanLongitude() float64 {
	return 280.1895014 -
		0.238724988*t.dYR() +
		0.9856473288*float64(t.dDAY()) +
		0.0410686387*float64(t.startDate.Hour())
}

// Angular elements. The d-prefixed quantities are in degrees; the rad
// variants convert only for trig evaluation.

func (t *Tidefac) dN() float64 { return t.lunarNode() }

func (t *Tidefac) nRad() float64 { return Deg2Rad(t.dN()) }

// iRad is the inclination of the lunar orbit to the celestial equator.
func (t *Tidefac) iRad() float64 {
	return math.Acos(0.9136949 - 0.0356926*math.Cos(t.nRad()))
}

// nuRad divides by asin(sin(I)) rather than sin(I).
// TODO: check against Schureman's nu formula; asin may belong on the
// whole quotient, but the emitted arguments depend on this composition.
func (t *Tidefac) nuRad() float64 {
	return 0.0897056 * math.Sin(t.nRad()) / math.Asin(math.Sin(t.iRad()))
}

func (t *Tidefac) dNU() float64 { return Rad2Deg(t.nuRad()) }

// xiRad composes atan(tan(0.64412*N/2)), which collapses to a wrapped
// scaling of N.
// TODO: compare with Schureman's xi = N - 2 atan(0.64412 tan(N/2)) - nu;
// kept as is because the Greenwich arguments are pinned to it.
func (t *Tidefac) xiRad() float64 {
	return t.nRad() - 2.0*math.Atan(math.Tan(0.64412*t.nRad()/2.0)) - t.nuRad()
}

func (t *Tidefac) dXI() float64 { return Rad2Deg(t.xiRad()) }

func (t *Tidefac) dT() float64 {
	return 180.0 + float64(t.startDate.Hour())*(360.0/24.0)
}

func (t *Tidefac) dS() float64 { return t.lunarMeanLongitude() }

func (t *Tidefac) dP() float64 { return t.lunarPerigee() }

func (t *Tidefac) pRad() float64 { return Deg2Rad(t.dP()) }

func (t *Tidefac) dH() float64 { return t.solarMeanLongitude() }

func (t *Tidefac) dP1() float64 { return t.solarPerigee() }

func (t *Tidefac) nupRad() float64 {
	return math.Atan(math.Sin(t.nuRad()) / (math.Cos(t.nuRad()) + 0.334766/math.Sin(2.0*t.iRad())))
}

func (t *Tidefac) dNUP() float64 { return Rad2Deg(t.nupRad()) }

func (t *Tidefac) dPC() float64 { return t.dP() - t.dXI() }

func (t *Tidefac) pcRad() float64 { return Deg2Rad(t.dPC()) }

// rRad applies atan to the numerator only.
// TODO: verify against Schureman's R; the quotient arguably belongs
// inside the atan, but output compatibility pins this form.
func (t *Tidefac) rRad() float64 {
	cotHalfI := 1.0 / math.Tan(0.5*t.iRad())
	return math.Atan(math.Sin(2.0*t.pcRad())) /
		((1.0/6.0)*cotHalfI*cotHalfI - math.Cos(2.0*t.pcRad()))
}

func (t *Tidefac) dR() float64 { return Rad2Deg(t.rRad()) }

func (t *Tidefac) nup2Rad() float64 {
	sinI := math.Sin(t.iRad())
	return math.Atan(math.Sin(2.0*t.nuRad())/(math.Cos(2.0*t.nuRad())+0.0726184/(sinI*sinI))) / 2.0
}

func (t *Tidefac) dNUP2() float64 { return Rad2Deg(t.nup2Rad()) }

func (t *Tidefac) qRad() float64 {
	cosI := math.Cos(t.iRad())
	return math.Atan2(5.0*cosI-1.0, (7.0*cosI+1.0)*math.Cos(t.pcRad())) * math.Sin(t.pcRad())
}

func (t *Tidefac) dQ() float64 { return Rad2Deg(t.qRad()) }

// Schureman nodal factor equations.

func (t *Tidefac) eq73() float64 {
	sinI := math.Sin(t.iRad())
	return (2./3. - sinI*sinI) / 0.5021
}

func (t *Tidefac) eq74() float64 {
	sinI := math.Sin(t.iRad())
	return sinI * sinI / 0.1578
}

func (t *Tidefac) eq75() float64 {
	cosHalfI := math.Cos(t.iRad() / 2.)
	return math.Sin(t.iRad()) * cosHalfI * cosHalfI / 0.37988
}

func (t *Tidefac) eq76() float64 {
	return math.Sin(2.0*t.iRad()) / 0.7214
}

func (t *Tidefac) eq77() float64 {
	sinHalfI := math.Sin(t.iRad() / 2.0)
	return math.Sin(t.iRad()) * sinHalfI * sinHalfI / 0.0164
}

func (t *Tidefac) eq78() float64 {
	cosHalfI := math.Cos(t.iRad() / 2.)
	return cosHalfI * cosHalfI * cosHalfI * cosHalfI / 0.91544
}

func (t *Tidefac) eq149() float64 {
	return math.Pow(math.Cos(t.iRad()/2.0), 6) / 0.8758
}

func (t *Tidefac) eq197() float64 {
	return math.Sqrt(2.310 + 1.435*math.Cos(2.0*(t.pRad()-t.xiRad())))
}

func (t *Tidefac) eq207() float64 {
	return t.eq75() * t.eq197()
}

func (t *Tidefac) eq213() float64 {
	tanHalfI := math.Tan(t.iRad() / 2.0)
	tan2 := tanHalfI * tanHalfI
	return math.Sqrt(1.0 - 12.0*tan2*math.Cos(2.0*t.pRad()) + 36.0*tan2*tan2)
}

func (t *Tidefac) eq215() float64 {
	return t.eq78() * t.eq213()
}

func (t *Tidefac) eq227() float64 {
	sin2I := math.Sin(2. * t.iRad())
	return math.Sqrt(0.8965*sin2I*sin2I + 0.6001*sin2I*math.Cos(t.nuRad()) + 0.1006)
}

func (t *Tidefac) eq235() float64 {
	sinI := math.Sin(t.iRad())
	sin2 := sinI * sinI
	return 0.001 + math.Sqrt(19.0444*sin2*sin2+2.7702*sin2*math.Cos(2.0*t.nuRad())+0.0981)
}
