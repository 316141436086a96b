// Package geodesy implements the coordinate-frame transformations, WGS-84
// geodetic conversions and oblate-Earth gravity used by the vehicle models.
//
// Frames follow the usual flight-dynamics naming. I is the inertial frame
// (Earth-centred, non-rotating), E is Earth-fixed, G is the local geographic
// (north, east, down) frame and D the geodetic frame, i.e. G tilted by the
// ellipsoid normal deflection. Matrices are named T<to><from>: TEI rotates
// inertial coordinates into Earth coordinates.
//
// Earth rotation enters through the elapsed simulation time t: the Earth
// frame is rotated by earth.WEII3*t + earth.GWCLong about the polar axis.
//
// All functions are pure. Longitudes are east positive in (-pi, pi]; latitudes
// and angles are in radians unless a name says otherwise.
package geodesy
