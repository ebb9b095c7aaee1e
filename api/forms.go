package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const welcomePage = `<h1>Welcome to Digital Airlines</h1> <h3>Click <a href='/login'>HERE</a> to login</h3>`

const registerForm = `<h1>Register</h1>
<form action="" method="post">
    <p><input type=text name=username placeholder="Enter your username" required/></p>
    <p><input type=text name=email placeholder="Enter your email" required/></p>
    <p><input type=password name=password placeholder="Enter your password" required/></p>
    <p><input type=text name=fullName placeholder="Enter your full name" required/></p>
    <p><label>Birth Date: </label><input type=date name=birthDate required/></p>
    <p><input type=text name=country placeholder="Enter your country" required/></p>
    <p><input type=text name=passportNo placeholder="Enter your passport number" required/></p>
    <button type=submit>Register</button>
</form>`

const loginForm = `<form action="" method="post">
    <p><input type=text name=email placeholder="Enter your email" /></p>
    <p><input type=password name=password placeholder="Enter your password" /></p>
    <button type=submit>Login</button>
    <button><a href='/register'>Register now!</a></button>
</form>`

const flightForm = `<h1>New Flight</h1>
<form action="" method="post">
    <p><label>Departure Airport: </label><input type=text name=departAirport required/></p>
    <p><label>Destination Airport: </label><input type=text name=destAirport required/></p>
    <p><label>Flight Date: </label><input type=date name=flightDate required/></p>
    <p><label>Available tickets for business class: </label><input type=number name=businessAvailableTickets required/></p>
    <p><label>Ticket cost for business class: </label><input type=number name=businessTicketCost required/></p>
    <p><label>Available tickets for economy class: </label><input type=number name=economyAvailableTickets required/></p>
    <p><label>Ticket cost for economy class: </label><input type=number name=economyTicketCost required/></p>
    <button type=submit>Submit</button>
</form>`

const bookingForm = `<h1>New Booking</h1>
<form action="" method="post">
    <p><input type=text name=firstName placeholder="Enter your name" required/></p>
    <p><input type=text name=lastName placeholder="Enter your last name" required/></p>
    <p><input type=text name=passportNo placeholder="Enter your passport number" required/></p>
    <p><input type=text name=email placeholder="Enter your email" required/></p>
    <p><input type=date name=birthDate placeholder="Enter your birth date" required/></p>
    <p><select name=ticketType required>
        <option value="">Choose a ticket type</option>
        <option value="economy">Economy</option>
        <option value="business">Business</option>
    </select></p>
    <button type=submit>Submit</button>
</form>`

func html(c *gin.Context, page string) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
