// Package main runs the in-memory fake of the transit API used during
// development and tests. It serves Ahmedabad fixture data and real JWT
// authentication so the CLI can be exercised without the backend.
//
// HTTP API (all under /api)
//
//	POST /register/              create an account
//	POST /auth/login/            {username,password} -> {access,refresh}
//	POST /auth/refresh/          {refresh} -> {access[,refresh]}
//	GET  /auth/me/               the signed-in user
//	GET  /bus-routes/[{id}/[trips/]]
//	GET  /bus-schedules/
//	GET  /find_route/?source=&destination=[&time=]
//	GET  /stops/search/?q=   /stops/nearby/?lat=&lng=[&radius=]   /stops/coordinates/
//	GET  /fares/estimate/?route_id=&transfers=&user_type=
//	GET  /passes/options/    POST /passes/quote/
//	GET|POST /favourites/    DELETE /favourites/{id}/    GET /favourites/user/
//	GET|POST /feedback/      GET /feedback/{recent,stats,user}/
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - A demo account is created at startup (see --user and --password).
//   - An access log records method, path, status and duration per request.
//   - The default listen address is 127.0.0.1:8000, matching the CLI's
//     default API root.
package main
